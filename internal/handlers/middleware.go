package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arraypress/contentquery/internal/config"
)

type contextKey string

// ClaimsKey carries the verified token claims through the request context.
const ClaimsKey contextKey = "claims"

type MiddlewareProvider struct {
	jwtCfg *config.JwtConfig
}

func New(jwtCfg *config.JwtConfig) *MiddlewareProvider {
	return &MiddlewareProvider{jwtCfg: jwtCfg}
}

func (m *MiddlewareProvider) secret() []byte {
	return []byte(m.jwtCfg.Secret)
}

// JWTMiddleware verifies the bearer token and stashes its claims in the
// request context.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return m.secret(), nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CapabilityMiddleware gates routes on a capability claim. It must run
// after JWTMiddleware. A "*" claim from a super admin passes every gate.
func (m *MiddlewareProvider) CapabilityMiddleware(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ClaimsKey).(jwt.MapClaims)
			if !ok {
				http.Error(w, "Missing claims", http.StatusUnauthorized)
				return
			}
			if !claimsAllow(claims, capability) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsAllow(claims jwt.MapClaims, capability string) bool {
	raw, ok := claims["capability"].([]interface{})
	if !ok {
		return false
	}
	for _, c := range raw {
		if s, ok := c.(string); ok && (s == capability || s == "*") {
			return true
		}
	}
	return false
}
