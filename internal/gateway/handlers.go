package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type userCreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type userPatchRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type itemCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type commentCreateRequest struct {
	Text string `json:"text" validate:"required"`
}

type requestCreateRequest struct {
	Description string `json:"description" validate:"required"`
}

type bookingCreateRequest struct {
	Start  *time.Time `json:"start" validate:"required"`
	End    *time.Time `json:"end" validate:"required"`
	ItemID int64      `json:"itemId" validate:"required"`
}

// withUserID rejects requests missing the sharer identity header before they
// hit the backend.
func (g *Gateway) withUserID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			respondError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
			return
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			respondError(w, http.StatusBadRequest, "invalid "+userIDHeader+" header")
			return
		}
		next(w, r)
	}
}

// decodeAndValidate reads the whole body, unmarshals it into dst and runs the
// struct validation. The raw body is returned so the handler can forward the
// exact bytes the client sent.
func (g *Gateway) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := g.validate.Struct(dst); err != nil {
		zap.L().Debug("validation failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return nil, false
	}
	return body, true
}

func (g *Gateway) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userPatchRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemCreateRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentCreateRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req requestCreateRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingCreateRequest
	body, ok := g.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}

	now := time.Now()
	switch {
	case req.Start.Before(now):
		respondError(w, http.StatusBadRequest, "booking cannot start in the past")
		return
	case !req.End.After(now):
		respondError(w, http.StatusBadRequest, "booking must end in the future")
		return
	case !req.End.After(*req.Start):
		respondError(w, http.StatusBadRequest, "booking must end after it starts")
		return
	}

	g.client.ForwardBody(w, r, body)
}

func (g *Gateway) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if !validPaging(w, r) {
		return
	}
	g.client.Forward(w, r)
}

func (g *Gateway) handleListRequests(w http.ResponseWriter, r *http.Request) {
	if !validPaging(w, r) {
		return
	}
	g.client.Forward(w, r)
}

func validPaging(w http.ResponseWriter, r *http.Request) bool {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || from < 0 {
			respondError(w, http.StatusBadRequest, "the index of the first element cannot be negative")
			return false
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			respondError(w, http.StatusBadRequest, "the page size must be positive")
			return false
		}
	}
	return true
}
