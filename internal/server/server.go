package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shareit/internal/service"
)

//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server

type UserService interface {
	Create(ctx context.Context, input service.UserInput) (*service.UserView, error)
	Get(ctx context.Context, id int64) (*service.UserView, error)
	GetAll(ctx context.Context) ([]service.UserView, error)
	Update(ctx context.Context, id int64, input service.UserInput) (*service.UserView, error)
	Delete(ctx context.Context, id int64) error
}

type ItemService interface {
	Add(ctx context.Context, userID int64, input service.ItemInput) (*service.ItemView, error)
	Update(ctx context.Context, userID, itemID int64, input service.ItemInput) (*service.ItemView, error)
	Delete(ctx context.Context, userID, itemID int64) error
	ItemsForOwner(ctx context.Context, userID int64) ([]service.ItemDetailView, error)
	Get(ctx context.Context, userID, itemID int64) (*service.ItemDetailView, error)
	Search(ctx context.Context, text string) ([]service.ItemView, error)
	CreateComment(ctx context.Context, userID, itemID int64, input service.CommentInput) (*service.CommentView, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID int64, input service.BookingInput) (*service.BookingView, error)
	SetApproved(ctx context.Context, ownerID, bookingID int64, approved bool) (*service.BookingView, error)
	Get(ctx context.Context, userID, bookingID int64) (*service.BookingView, error)
	ListForBooker(ctx context.Context, userID int64, state string, from, size int64) ([]service.BookingView, error)
	ListForOwner(ctx context.Context, userID int64, state string, from, size int64) ([]service.BookingView, error)
}

type RequestService interface {
	Create(ctx context.Context, userID int64, input service.RequestInput) (*service.RequestView, error)
	Own(ctx context.Context, userID int64) ([]service.RequestView, error)
	All(ctx context.Context, userID, from, size int64) ([]service.RequestView, error)
	Get(ctx context.Context, userID, requestID int64) (*service.RequestView, error)
}

type Server struct {
	users    UserService
	items    ItemService
	bookings BookingService
	requests RequestService

	server       *http.Server
	AuditManager *AuditManager
}

func New(users UserService, items ItemService, bookings BookingService, requests RequestService) *Server {
	return &Server{
		users:        users,
		items:        items,
		bookings:     bookings,
		requests:     requests,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond),
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	zap.L().Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	zap.L().Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.AuditManager.Shutdown(ctx)
	zap.L().Info("server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Use(s.requestIDMiddleware, s.auditLogMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost).Name("createUser")
	router.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet).Name("listUsers")
	router.HandleFunc("/users/{userId}", s.handleGetUser).Methods(http.MethodGet).Name("getUser")
	router.HandleFunc("/users/{userId}", s.handleUpdateUser).Methods(http.MethodPatch).Name("updateUser")
	router.HandleFunc("/users/{userId}", s.handleDeleteUser).Methods(http.MethodDelete).Name("deleteUser")

	router.HandleFunc("/items", s.handleAddItem).Methods(http.MethodPost).Name("addItem")
	router.HandleFunc("/items", s.handleListItems).Methods(http.MethodGet).Name("listItems")
	router.HandleFunc("/items/search", s.handleSearchItems).Methods(http.MethodGet).Name("searchItems")
	router.HandleFunc("/items/{itemId}", s.handleGetItem).Methods(http.MethodGet).Name("getItem")
	router.HandleFunc("/items/{itemId}", s.handleUpdateItem).Methods(http.MethodPatch).Name("updateItem")
	router.HandleFunc("/items/{itemId}", s.handleDeleteItem).Methods(http.MethodDelete).Name("deleteItem")
	router.HandleFunc("/items/{itemId}/comment", s.handleCreateComment).Methods(http.MethodPost).Name("createComment")

	router.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost).Name("createBooking")
	router.HandleFunc("/bookings/owner", s.handleListOwnerBookings).Methods(http.MethodGet).Name("listOwnerBookings")
	router.HandleFunc("/bookings", s.handleListBookings).Methods(http.MethodGet).Name("listBookings")
	router.HandleFunc("/bookings/{bookingId}", s.handleGetBooking).Methods(http.MethodGet).Name("getBooking")
	router.HandleFunc("/bookings/{bookingId}", s.handleApproveBooking).Methods(http.MethodPatch).Name("approveBooking")

	router.HandleFunc("/requests", s.handleCreateRequest).Methods(http.MethodPost).Name("createRequest")
	router.HandleFunc("/requests", s.handleListOwnRequests).Methods(http.MethodGet).Name("listOwnRequests")
	router.HandleFunc("/requests/all", s.handleListAllRequests).Methods(http.MethodGet).Name("listAllRequests")
	router.HandleFunc("/requests/{requestId}", s.handleGetRequest).Methods(http.MethodGet).Name("getRequest")

	return router
}
