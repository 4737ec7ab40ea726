package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"folio/internal/schema"
)

// WriteError writes an error body as {"detail": message}.
func WriteError(w http.ResponseWriter, code int, message string, log *zap.Logger) {
	log.Warn("API error", zap.Int("status", code), zap.String("detail", message))
	writeJSON(w, code, map[string]string{"detail": message})
}

// WriteValidationErrors writes a 422 body carrying the per-field errors,
// {"detail": [{"loc": [...], "msg": "..."}]}.
func WriteValidationErrors(w http.ResponseWriter, errs []schema.FieldError, log *zap.Logger) {
	log.Warn("validation failed", zap.Int("errors", len(errs)))
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// RequestLogger logs HTTP requests and responses
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip wrapping for WebSocket upgrades - they need direct access to ResponseWriter
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			log.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", duration),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
