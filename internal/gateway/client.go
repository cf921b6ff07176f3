package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client forwards validated requests to the backend server and relays the
// response without touching it.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Forward replays the incoming request against the backend, streaming the
// original body.
func (c *Client) Forward(w http.ResponseWriter, r *http.Request) {
	c.forward(w, r, r.Body)
}

// ForwardBody replays the incoming request with an already-read body, used by
// handlers that had to unmarshal it for validation.
func (c *Client) ForwardBody(w http.ResponseWriter, r *http.Request, body []byte) {
	c.forward(w, r, io.NopCloser(bytes.NewReader(body)))
}

func (c *Client) forward(w http.ResponseWriter, r *http.Request, body io.Reader) {
	targetURL := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		targetURL += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, body)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to build backend request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	copyHeader(r, req, userIDHeader)
	copyHeader(r, req, "X-Request-Id")

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Error("backend unreachable", zap.String("url", targetURL), zap.Error(err))
		respondError(w, http.StatusBadGateway, "failed to reach backend")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		zap.L().Warn("failed to relay backend response", zap.Error(err))
	}
}

func copyHeader(src *http.Request, dst *http.Request, name string) {
	if v := src.Header.Get(name); v != "" {
		dst.Header.Set(name, v)
	}
}
