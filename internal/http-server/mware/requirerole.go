package mware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
)

// RequireRole возвращает middleware, пропускающее только принципалов
// с одной из перечисленных ролей. Отсутствие принципала — 401,
// несоответствие роли — 403.
func RequireRole(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.RequireRole"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				log.Error("no principal in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized: no token provided"))
				return
			}
			if _, ok := allowed[principal.Role]; !ok {
				log.Error("forbidden", slog.String("role", principal.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden: insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
