package gateway

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const userIDHeader = "X-Sharer-User-Id"

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
