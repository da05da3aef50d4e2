// internal/server/middleware.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"talenthub/internal/common/auth"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/metrics"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// ClaimsFrom returns the authenticated token claims stored by requireAuth.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// withObservability wraps a handler with request logging, metrics and panic
// recovery. The route label keeps metric cardinality bounded.
func (s *Server) withObservability(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("handler panic", map[string]interface{}{
					"panic":  p,
					"method": r.Method,
					"path":   r.URL.Path,
				})
				s.errors.WriteHTTP(rec, r, apperrors.NewInternalError(fmt.Errorf("panic: %v", p)))
			}

			duration := time.Since(start)
			status := strconv.Itoa(rec.status)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())
			if s.obs != nil {
				s.obs.RecordRequestProcessed(r.Context(), status)
				s.obs.RecordRequestDuration(r.Context(), duration, status)
			}
			s.logger.Info("request completed", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": duration.String(),
			})
		}()

		next(rec, r)
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth rejects requests without a valid bearer token and stores the
// claims in the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.errors.WriteHTTP(w, r, apperrors.NewAuthenticationError("missing bearer token"))
			return
		}
		claims, err := s.auth.ValidateToken(r.Context(), token)
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims)))
	}
}

// adminCaller reports whether the request carries a valid bearer token for
// an admin account. Public routes use it to widen behavior for admins
// without rejecting anonymous callers.
func (s *Server) adminCaller(r *http.Request) bool {
	token := bearerToken(r)
	if token == "" {
		return false
	}
	claims, err := s.auth.ValidateToken(r.Context(), token)
	if err != nil {
		return false
	}
	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return false
	}
	return auth.IsAdminRole(user.UserType)
}

// requireAdmin additionally gates on the account's user type.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r.Context())
		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
		if !auth.IsAdminRole(user.UserType) {
			s.errors.WriteHTTP(w, r, apperrors.NewForbiddenError("admin access required"))
			return
		}
		next(w, r)
	})
}
