package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token into the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (utils.Principal, error)
}

// JWTAuth middleware untuk validasi bearer token
func JWTAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthenticated) {
					logger.Warn("Rejected bearer token",
						zap.String("path", r.URL.Path),
						zap.Error(err))
					utils.ResponseUnauthorized(w, "Invalid or expired token")
					return
				}
				logger.Error("Failed to authenticate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// Set context dengan user info DAN token
			ctx := utils.SetUserContext(r.Context(), principal)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request only when the caller holds one of roles.
// Must run after JWTAuth.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get principal dari context (sudah diset JWTAuth)
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Check role
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check: access denied",
				zap.Int64("user_id", principal.UserID),
				zap.String("role", principal.Role),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Insufficient role")
		})
	}
}

// Admin - middleware cek role admin
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, utils.RoleAdmin)
}
