package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/torneolink/backend/models"
)

type contextKey string

const (
	userIDContextKey contextKey = "user_id"
	rolesContextKey  contextKey = "roles"
)

// Authenticator verifies the Bearer token on each request and stores the
// caller's id and roles in the request context.
type Authenticator struct {
	secret   []byte
	issuer   string
	audience string
}

func NewAuthenticator(secret, issuer, audience string) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
			writeAuthError(w, http.StatusUnauthorized, "invalid token issuer")
			return
		}
		if a.audience != "" && !claims.VerifyAudience(a.audience, true) {
			writeAuthError(w, http.StatusUnauthorized, "invalid token audience")
			return
		}

		userIDClaim, ok := claims["user_id"].(float64)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "token missing user claim")
			return
		}

		var roles []string
		if rawRoles, ok := claims["roles"].([]interface{}); ok {
			for _, raw := range rawRoles {
				if role, ok := raw.(string); ok {
					roles = append(roles, role)
				}
			}
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, int(userIDClaim))
		ctx = context.WithValue(ctx, rolesContextKey, roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole passes the request through when the caller holds any of the
// given roles.
func RequireRole(roles ...models.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRoles, ok := RolesFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, required := range roles {
				for _, held := range callerRoles {
					if string(required) == held {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			writeAuthError(w, http.StatusForbidden, "insufficient role")
		})
	}
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDContextKey).(int)
	return id, ok
}

func RolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(rolesContextKey).([]string)
	return roles, ok
}

func HasRole(ctx context.Context, role models.RoleName) bool {
	roles, ok := RolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, held := range roles {
		if held == string(role) {
			return true
		}
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q}`, message)
}
