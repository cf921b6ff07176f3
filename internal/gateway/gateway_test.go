package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, backend http.HandlerFunc) http.Handler {
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return New(NewClient(srv.URL)).setupRoutes()
}

func doRequest(t *testing.T, handler http.Handler, method, target, userID string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader = bytes.NewReader(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGatewayForwardsValidRequests(t *testing.T) {
	var gotPath, gotUserID string
	var gotBody []byte
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserID = r.Header.Get(userIDHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":2}`))
	})

	rr := doRequest(t, handler, http.MethodPost, "/items", "1", map[string]interface{}{
		"name": "drill", "description": "cordless", "available": true,
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":2}`, rr.Body.String())
	assert.Equal(t, "/items", gotPath)
	assert.Equal(t, "1", gotUserID)
	assert.JSONEq(t, `{"name":"drill","description":"cordless","available":true}`, string(gotBody))
}

func TestGatewayRejectsMissingUserID(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached")
	})

	rr := doRequest(t, handler, http.MethodPost, "/items", "", map[string]interface{}{
		"name": "drill", "description": "cordless", "available": true,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGatewayValidatesUserCreate(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached")
	})

	t.Run("missing email", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, "/users", "", map[string]interface{}{"name": "Alice"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, "/users", "",
			map[string]interface{}{"name": "Alice", "email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGatewayValidatesItemCreate(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached")
	})

	rr := doRequest(t, handler, http.MethodPost, "/items", "1",
		map[string]interface{}{"name": "drill", "description": "cordless"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGatewayValidatesBookingWindow(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached")
	})

	now := time.Now()

	t.Run("start in the past", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, "/bookings", "5", map[string]interface{}{
			"start":  now.Add(-time.Hour).Format(time.RFC3339),
			"end":    now.Add(time.Hour).Format(time.RFC3339),
			"itemId": 2,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("end before start", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, "/bookings", "5", map[string]interface{}{
			"start":  now.Add(48 * time.Hour).Format(time.RFC3339),
			"end":    now.Add(24 * time.Hour).Format(time.RFC3339),
			"itemId": 2,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing itemId", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, "/bookings", "5", map[string]interface{}{
			"start": now.Add(24 * time.Hour).Format(time.RFC3339),
			"end":   now.Add(48 * time.Hour).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGatewayValidatesPaging(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be reached")
	})

	t.Run("negative from", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodGet, "/bookings?from=-1", "5", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("zero size", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodGet, "/requests/all?size=0", "5", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGatewayRelaysBackendErrors(t *testing.T) {
	handler := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"item 42 not found"}`))
	})

	rr := doRequest(t, handler, http.MethodGet, "/items/42", "1", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"item 42 not found"}`, rr.Body.String())
}

func TestGatewayReturns502WhenBackendIsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	handler := New(NewClient(srv.URL)).setupRoutes()

	rr := doRequest(t, handler, http.MethodGet, "/items/1", "1", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
