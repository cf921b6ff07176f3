package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"shareit/internal/service"
)

// UserIDHeader identifies the calling user on every authenticated route.
const UserIDHeader = "X-Sharer-User-Id"

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps domain error kinds onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBadRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func userIDFromRequest(r *http.Request) (int64, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", UserIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s header", UserIDHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// pageParams reads the from/size query pair, defaulting to 0/10.
func pageParams(r *http.Request) (from, size int64, err error) {
	from, size = 0, 10

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || from < 0 {
			return 0, 0, fmt.Errorf("the index of the first element cannot be negative")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return 0, 0, fmt.Errorf("the page size must be positive")
		}
	}
	return from, size, nil
}
