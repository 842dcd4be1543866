package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.uber.org/zap"
)

// Claims is the token payload expected from the external auth provider.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth verifies the bearer token and stores the identity snapshot in the
// request context. Unauthenticated requests get a 401 with a sign-in
// redirect hint instead of reaching any handler.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization token is not provided")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: invalid authorization header format", zap.String("path", r.URL.Path))
				unauthorized(w, "authorization token format is invalid, expected 'Bearer <token>'")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				log.Warn("JWTAuth: token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "token has expired")
					return
				}
				unauthorized(w, "token is invalid")
				return
			}
			if !token.Valid || claims.UserID == "" {
				unauthorized(w, "token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailCtxKey, claims.Email)
			ctx = context.WithValue(ctx, UserNameCtxKey, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized answers with the sign-in redirect contract: the client is
// expected to navigate to /signin on any 401.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    msg,
		"redirect": "/signin",
	})
}
