// Package login обработчик входа. Успешный вход устанавливает сессионные
// cookie с парой токенов и возвращает учётную запись без секретных полей.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ayushsetu/credential-registry/internal/config"
	"github.com/ayushsetu/credential-registry/internal/http-server/cookies"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/services/auth"
)

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// LoginFunc проверяет учётные данные и открывает сессию. Возвращаемая
// учётная запись уже очищена от секретных полей.
type LoginFunc func(ctx context.Context, emailOrPhone, password string) (account any, pair *auth.TokenPair, err error)

// New
// @Summary Вход в учётную запись
// @Tags auth
// @Accept  json
// @Produce json
// @Param   loginRequest body LoginRequest true "Email или телефон и пароль"
// @Success 200 {object} response.Response "Сессия открыта"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Неверные учётные данные"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /login [post]
func New(log *slog.Logger, env string, tokens config.TokenDomain, login LoginFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"
		var loginRequest LoginRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &loginRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(loginRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		account, pair, err := login(r.Context(), loginRequest.EmailOrPhone, loginRequest.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				log.Error("invalid credentials")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid credentials"))
				return
			}
			log.Error("failed to login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to login"))
			return
		}

		cookies.SetPair(w, env, pair.Access, pair.Refresh, tokens.AccessTTL, tokens.RefreshTTL)
		log.Info("session opened")
		render.JSON(w, r, response.StatusOKWithData(account))
	}
}
