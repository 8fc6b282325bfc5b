package middleware

import (
	"fmt"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
)

// RequirePermission wraps RequireAuth and additionally checks one
// capability string ("resource:action"). Permissions are evaluated
// against the stored user record, so revocations apply immediately.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				httputil.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !user.Can(permission) {
				httputil.WriteError(w, http.StatusForbidden,
					fmt.Sprintf("%s permission required", permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission passes when the user holds at least one of the
// given capabilities.
func (m *AuthMiddleware) RequireAnyPermission(permissions ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				httputil.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			for _, permission := range permissions {
				if user.Can(permission) {
					next.ServeHTTP(w, r)
					return
				}
			}

			httputil.WriteError(w, http.StatusForbidden,
				fmt.Sprintf("one of %v permissions required", permissions))
		})
	}
}
