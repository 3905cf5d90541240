// Package refresh обработчик обновления сессии по refresh-токену.
// Токен берётся из cookie, при её отсутствии — из тела запроса.
// Предъявленный токен должен совпасть с сохранённым; пара токенов ротируется.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/config"
	"github.com/ayushsetu/credential-registry/internal/http-server/cookies"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/services/auth"
)

// RefreshFunc обновляет сессию по refresh-токену.
type RefreshFunc func(ctx context.Context, refreshToken string) (account any, pair *auth.TokenPair, err error)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// New
// @Summary Обновление сессии
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Сессия обновлена"
// @Failure 401 {object} response.Response "Refresh-токен отсутствует или невалиден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /refresh [post]
func New(log *slog.Logger, env string, tokens config.TokenDomain, refresh RefreshFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refresh.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var token string
		if cookie, err := r.Cookie(cookies.RefreshToken); err == nil && cookie.Value != "" {
			token = cookie.Value
		} else {
			var req refreshRequest
			if err := render.DecodeJSON(r.Body, &req); err == nil {
				token = req.RefreshToken
			}
		}
		if token == "" {
			log.Error("no refresh token provided")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized: no refresh token provided"))
			return
		}

		account, pair, err := refresh(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidRefresh) {
				log.Error("invalid refresh token")
				cookies.Clear(w, env)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid refresh token"))
				return
			}
			log.Error("failed to refresh session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to refresh session"))
			return
		}

		cookies.SetPair(w, env, pair.Access, pair.Refresh, tokens.AccessTTL, tokens.RefreshTTL)
		log.Info("session refreshed")
		render.JSON(w, r, response.StatusOKWithData(account))
	}
}
