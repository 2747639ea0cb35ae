// internal/middleware/permission.go
package middleware

import (
	"net/http"

	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/service"
)

// RequirePermission gates a route group on one (verb, resource) check,
// resolved fresh against the store for the acting profile.
func RequirePermission(permissions *service.PermissionService, verb model.Verb, resource model.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID, ok := ProfileIDFromContext(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			allowed, err := permissions.HasPermission(r.Context(), profileID, verb, resource)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Permission check failed")
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
