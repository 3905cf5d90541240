// Package logout обработчик завершения сессии: сохранённый refresh-токен
// очищается, сессионные cookie удаляются.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/cookies"
	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
)

// LogoutFunc очищает сохранённый refresh-токен принципала.
type LogoutFunc func(ctx context.Context, principalID string) error

// New
// @Summary Завершение сессии
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Сессия завершена"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /logout [post]
func New(log *slog.Logger, env string, logout LogoutFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		principal, ok := mware.PrincipalFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized: no token provided"))
			return
		}

		if err := logout(r.Context(), principal.ID); err != nil {
			log.Error("failed to logout", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to logout"))
			return
		}

		cookies.Clear(w, env)
		log.Info("session closed", slog.String("id", principal.ID))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "logged out successfully",
		}))
	}
}
