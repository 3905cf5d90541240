// Package updatedetails обработчик обновления имени, email и пароля
// текущего принципала. Пустые поля запроса оставляют значения без изменений;
// смена пароля требует подтверждения текущим паролем.
package updatedetails

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/services/auth"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

type UpdateRequest struct {
	Fullname    string `json:"fullname" validate:"omitempty,min=2,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	OldPassword string `json:"oldPassword" validate:"required_with=NewPassword"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6"`
}

// UpdateFunc обновляет данные учётной записи и возвращает её очищенную копию.
// Смена пароля выполняется только после проверки oldPassword.
type UpdateFunc func(ctx context.Context, principalID, fullname, email, oldPassword, newPassword string) (account any, err error)

// New
// @Summary Обновление данных учётной записи
// @Tags auth
// @Accept  json
// @Produce json
// @Param   updateRequest body UpdateRequest true "Новые данные; пустые поля игнорируются"
// @Success 200 {object} response.Response "Данные обновлены"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет аутентификации или неверный текущий пароль"
// @Failure 409 {object} response.Response "Email уже занят"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /update-details [post]
func New(log *slog.Logger, update UpdateFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.updatedetails.New"
		var updateRequest UpdateRequest

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

		if err := render.DecodeJSON(r.Body, &updateRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(updateRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		account, err := update(r.Context(), principal.ID, updateRequest.Fullname,
			updateRequest.Email, updateRequest.OldPassword, updateRequest.NewPassword)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				log.Error("old password mismatch")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid credentials"))
				return
			}
			if errors.Is(err, storage.ErrAlreadyExists) {
				log.Error("email already in use", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("email or phone number already in use"))
				return
			}
			log.Error("failed to update details", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update details"))
			return
		}

		log.Info("details updated", slog.String("id", principal.ID))
		render.JSON(w, r, response.StatusOKWithData(account))
	}
}
