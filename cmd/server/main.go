package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shareit/internal/db"
	"shareit/internal/logger"
	"shareit/internal/repository/postgresql"
	"shareit/internal/server"
	"shareit/internal/service"
)

const defaultPort = "9090"

func main() {
	lg := logger.New()
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db.LoadEnv()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatalf("Schema init error: %v", err)
	}

	userRepo := postgresql.NewUserRepo(database)
	itemRepo := postgresql.NewItemRepo(database)
	bookingRepo := postgresql.NewBookingRepo(database)
	requestRepo := postgresql.NewRequestRepo(database)
	commentRepo := postgresql.NewCommentRepo(database)

	users := service.NewUserService(userRepo)
	items := service.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo)
	bookings := service.NewBookingService(bookingRepo, itemRepo, userRepo, database)
	requests := service.NewRequestService(requestRepo, userRepo, itemRepo)

	srv := server.New(users, items, bookings, requests)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = defaultPort
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx, port)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}

	log.Println("Server gracefully stopped")
}
