// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/platform/logger"
	"github.com/mochi-hq/mochi-api/internal/service/auth"
)

// AuthMiddleware gates protected routes behind bearer-token
// authentication. Every failure, whatever its internal cause, produces
// the same 401 response body so the reply carries no signal about what
// was wrong with the credentials. Causes are logged at debug level only.
type AuthMiddleware struct {
	validator auth.Validator
	logger    *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(validator auth.Validator, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthMiddleware")
	}

	return &AuthMiddleware{
		validator: validator,
		logger:    logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the Authorization header and, on success,
// stores the verified claims and the raw bearer token in the request
// context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		headerValue := r.Header.Get("Authorization")

		claims, err := m.validator.Validate(r.Context(), headerValue)
		if err != nil {
			log.Debug("authentication rejected",
				slog.String("path", r.URL.Path),
				slog.String("cause", err.Error()))
			shared.RespondWithError(
				w, r,
				http.StatusUnauthorized,
				shared.NewErrorBody(shared.ErrorTypeUnauthorized, "Invalid authentication."),
			)
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		ctx = shared.WithBearerToken(ctx, strings.TrimPrefix(headerValue, "Bearer "))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
