package handlers

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pitchconnect/analytics-api/internal/logic"
)

const readyTimeout = 2 * time.Second

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"service":       "analytics-api",
		"model_version": logic.ModelVersion,
		"timestamp":     time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := map[string]bool{
		"postgres":   h.pg != nil && h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch != nil && h.ch.Ping(ctx) == nil,
	}
	if h.cache != nil {
		checks["redis"] = h.cache.Ping(ctx) == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	body := map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	}
	if h.pool != nil {
		body["queueDepth"] = h.pool.QueueDepth()
	}
	h.jsonResponse(w, status, body)
}

// AdminAuthMiddleware guards administrative endpoints with the static admin token
func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			h.errorResponse(w, http.StatusForbidden, "Admin endpoints are disabled")
			return
		}

		token := r.Header.Get("X-Admin-Token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if token == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Missing admin token")
			return
		}

		// Compare digests so the check does not leak the token length
		got := sha256.Sum256([]byte(token))
		want := sha256.Sum256([]byte(h.adminToken))
		if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
			h.logger.Warnw("Rejected admin request", "remote", r.RemoteAddr, "path", r.URL.Path)
			h.errorResponse(w, http.StatusUnauthorized, "Invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusFor maps the engine's error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case logic.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrInvalidComparison),
		errors.Is(err, logic.ErrInvalidHorizon),
		errors.Is(err, logic.ErrUnsupportedCurrency):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrUnsupportedSport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// engineError writes the response for a failed engine call. Client errors keep
// their message; server errors are logged and answered generically.
func (h *Handler) engineError(w http.ResponseWriter, err error, msg string, keysAndValues ...interface{}) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		h.errorResponse(w, status, err.Error())
		return
	}
	h.logger.Errorw(msg, append(keysAndValues, "error", err)...)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}
	h.errorResponse(w, status, msg)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
