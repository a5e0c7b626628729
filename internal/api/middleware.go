package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"

	"fjacquet/budget-board/internal/logging"
)

// RequestLogger logs every request with method, path, status, and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		// Strip CR/LF from user-supplied values to prevent log injection.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		log.WithFields(
			logging.Field{Key: "method", Value: sanitize(r.Method)},
			logging.Field{Key: "path", Value: sanitize(r.URL.Path)},
			logging.Field{Key: logging.FieldStatus, Value: wrapped.statusCode},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		).Info("Request handled")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// newCORS builds the CORS middleware for the configured origins.
func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Type", "Content-Disposition"},
		MaxAge:         300,
	})
}
