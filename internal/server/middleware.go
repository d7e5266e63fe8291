package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
)

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware adds CORS headers for the web dashboard.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Authentication, X-Request-ID, X-Correlation-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get("X-Correlation-ID")
		}
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set("X-Correlation-ID", corrID)
		next.ServeHTTP(w, r)
	})
}

// serviceKeyMiddleware enforces the global service key for API routes. The
// key arrives verbatim in the Authorization header; when no key is
// configured all API access is denied rather than left open. System routes
// (health, version, config) stay reachable for probes.
func serviceKeyMiddleware(config *common.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresServiceKey(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if config.Auth.ServiceKey == "" {
				WriteError(w, http.StatusForbidden, "API access is not configured")
				return
			}

			if r.Header.Get("Authorization") != config.Auth.ServiceKey {
				WriteError(w, http.StatusForbidden, "Invalid or missing global API Authorization key.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresServiceKey(path string) bool {
	return strings.HasPrefix(path, "/api/portfolio/") || strings.HasPrefix(path, "/api/users/")
}

// userKeyMiddleware resolves the optional per-user API key from the
// Authentication header. A missing header means an anonymous request; a
// present but invalid key is rejected with 401. On success the user is
// attached to the request context and their last access time is stamped.
func userKeyMiddleware(users interfaces.UserStore, logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := strings.TrimSpace(r.Header.Get("Authentication"))
			if apiKey == "" || users == nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByAPIKey(r.Context(), apiKey)
			if err != nil || !user.IsAPIActive {
				WriteError(w, http.StatusUnauthorized, "Invalid API key.")
				return
			}

			user.LastAPIAccess = time.Now().UTC()
			if err := users.SaveUser(r.Context(), user); err != nil {
				logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to stamp last API access")
			}

			ctx := common.WithUserContext(r.Context(), &common.UserContext{
				UserID:   user.ID,
				Username: user.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			dur := time.Since(start)
			corrID := w.Header().Get("X-Correlation-ID")

			event := logger.Trace()
			if rw.statusCode >= 500 {
				event = logger.Error()
			} else if rw.statusCode >= 400 {
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", rw.statusCode).
				Int("bytes", rw.bytesWritten).
				Dur("duration", dur).
				Str("correlation_id", corrID).
				Msg("HTTP request")
		})
	}
}

// applyMiddleware wires the middleware chain around the mux. Recovery is
// outermost so a panic anywhere below still produces a JSON 500.
func applyMiddleware(mux http.Handler, logger *common.Logger, config *common.Config, users interfaces.UserStore) http.Handler {
	handler := mux
	handler = userKeyMiddleware(users, logger)(handler)
	handler = serviceKeyMiddleware(config)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = correlationIDMiddleware(handler)
	handler = corsMiddleware(handler)
	handler = recoveryMiddleware(logger)(handler)
	return handler
}
