package middleware

import (
	"context"
	"net/http"
	"strings"

	"paisa/internal/domain/user"
	"paisa/internal/shared/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID    int64
	Email string
	Name  string
}

// IdentityFrom returns the authenticated caller, or nil when the request
// did not pass through Auth.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// WithIdentity attaches an identity directly, bypassing token validation.
// Handler tests use this in place of the full Auth middleware.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Auth verifies the Bearer token and resolves the account behind it.
// Tokens for deleted or unknown accounts are rejected the same way as
// malformed ones, with a generic 401.
func Auth(jwt *auth.JWT, users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w)
				return
			}

			claims, err := jwt.Validate(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			account, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
				return
			}
			if account == nil {
				unauthorized(w)
				return
			}

			identity := &Identity{ID: account.ID, Email: account.Email, Name: account.Name}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Authentication required"}`))
}
