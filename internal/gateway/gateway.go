package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Gateway is a validating proxy: it rejects malformed requests before they
// reach the server and forwards everything else untouched.
type Gateway struct {
	client   *Client
	validate *validator.Validate
	server   *http.Server
}

func New(client *Client) *Gateway {
	return &Gateway{
		client:   client,
		validate: validator.New(),
	}
}

func (g *Gateway) Run(ctx context.Context, port string) error {
	router := g.setupRoutes()

	g.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	zap.L().Info("gateway starting", zap.String("port", port))
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	zap.L().Info("shutting down gateway")
	return g.server.Shutdown(ctx)
}

func (g *Gateway) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Use(g.loggingMiddleware)

	router.HandleFunc("/users", g.handleCreateUser).Methods(http.MethodPost)
	router.HandleFunc("/users", g.client.Forward).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId:[0-9]+}", g.client.Forward).Methods(http.MethodGet, http.MethodDelete)
	router.HandleFunc("/users/{userId:[0-9]+}", g.handleUpdateUser).Methods(http.MethodPatch)

	router.HandleFunc("/items", g.withUserID(g.handleAddItem)).Methods(http.MethodPost)
	router.HandleFunc("/items", g.withUserID(g.client.Forward)).Methods(http.MethodGet)
	router.HandleFunc("/items/search", g.withUserID(g.client.Forward)).Methods(http.MethodGet)
	router.HandleFunc("/items/{itemId:[0-9]+}", g.withUserID(g.client.Forward)).
		Methods(http.MethodGet, http.MethodPatch, http.MethodDelete)
	router.HandleFunc("/items/{itemId:[0-9]+}/comment", g.withUserID(g.handleCreateComment)).Methods(http.MethodPost)

	router.HandleFunc("/bookings", g.withUserID(g.handleCreateBooking)).Methods(http.MethodPost)
	router.HandleFunc("/bookings", g.withUserID(g.handleListBookings)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/owner", g.withUserID(g.handleListBookings)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{bookingId:[0-9]+}", g.withUserID(g.client.Forward)).
		Methods(http.MethodGet, http.MethodPatch)

	router.HandleFunc("/requests", g.withUserID(g.handleCreateRequest)).Methods(http.MethodPost)
	router.HandleFunc("/requests", g.withUserID(g.client.Forward)).Methods(http.MethodGet)
	router.HandleFunc("/requests/all", g.withUserID(g.handleListRequests)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{requestId:[0-9]+}", g.withUserID(g.client.Forward)).Methods(http.MethodGet)

	return router
}

func (g *Gateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("request forwarded",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
