package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter captures the response status code for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logging returns a middleware that logs every HTTP request.
// It logs the method, path, employee ID, status, and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(writer, r)

		duration := time.Since(start).Milliseconds()
		employeeID := GetEmployeeID(r.Context()) // empty if pre-auth
		if writer.status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", writer.status,
				"employee_id", employeeID,
				"duration_ms", duration,
			)
		} else if writer.status >= http.StatusBadRequest {
			slog.Warn("request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"status", writer.status,
				"employee_id", employeeID,
				"duration_ms", duration,
			)
		} else {
			slog.Info("request ok",
				"method", r.Method,
				"path", r.URL.Path,
				"status", writer.status,
				"employee_id", employeeID,
				"duration_ms", duration,
			)
		}
	})
}
