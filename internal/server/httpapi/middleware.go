package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ryabovm/passport/internal/common"
	"github.com/ryabovm/passport/internal/server/auth"
)

const bearerPrefix = "Bearer "

const (
	msgNoToken      = "No token provided, authorization denied"
	msgInvalidToken = "Token is not valid, authorization denied"
)

type ctxKey int

const claimsKey ctxKey = iota

// Authenticate checks an Authorization header value and returns the verified
// claims. It is a pure function of the header and the token service: no
// request mutation, no store access.
func Authenticate(tokens *auth.TokenService, header string) (*auth.Claims, error) {
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return nil, common.ErrNoToken
	}
	return tokens.Verify(header[len(bearerPrefix):])
}

// ClaimsFromContext returns the claims attached by the authenticate
// middleware, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// authenticate gates protected routes. Expired, invalid and absent tokens
// are logged distinctly but all answer with the same generic 401; the token
// itself is never logged.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := Authenticate(s.tokens, r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, common.ErrNoToken):
				s.logger.Warn(r.Context(), "request without bearer token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgNoToken)
			case errors.Is(err, common.ErrTokenExpired):
				s.logger.Warn(r.Context(), "expired token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
			default:
				s.logger.Warn(r.Context(), "invalid token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
			}
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests tags every request with a generated id and logs method, path,
// status and duration on completion.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.With("request_id", requestID).Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
