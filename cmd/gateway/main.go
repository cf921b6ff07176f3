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
	"shareit/internal/gateway"
	"shareit/internal/logger"
)

const (
	defaultPort      = "8080"
	defaultServerURL = "http://localhost:9090"
)

func main() {
	lg := logger.New()
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db.LoadEnv()

	serverURL := os.Getenv("SHAREIT_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		port = defaultPort
	}

	gw := gateway.New(gateway.NewClient(serverURL))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gw.Run(gCtx, port)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return gw.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Gateway stopped with error: %v", err)
	}

	log.Println("Gateway gracefully stopped")
}
