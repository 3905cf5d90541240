// Package register обработчик регистрации учётной записи. Один и тот же
// обработчик обслуживает пользовательский и административный контуры:
// различается только функция регистрации, переданная при сборке маршрутов.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

type RegisterRequest struct {
	Fullname    string `json:"fullname" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=15"`
	Password    string `json:"password" validate:"required,min=6"`
}

// RegisterFunc регистрирует учётную запись и возвращает её ID.
type RegisterFunc func(ctx context.Context, fullname, email, phoneNumber, password string) (string, error)

// New
// @Summary Регистрация новой учётной записи
// @Tags auth
// @Accept  json
// @Produce json
// @Param   registerRequest body RegisterRequest true "Данные для регистрации"
// @Success 201 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.Response "Ошибка валидации или некорректный запрос"
// @Failure 409 {object} response.Response "Email или телефон уже заняты"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /register [post]
func New(log *slog.Logger, register RegisterFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"
		var registerRequest RegisterRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &registerRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(registerRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		id, err := register(r.Context(), registerRequest.Fullname, registerRequest.Email,
			registerRequest.PhoneNumber, registerRequest.Password)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				log.Error("account already exists", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("email or phone number already in use"))
				return
			}
			log.Error("failed to register account", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register account"))
			return
		}

		log.Info("created new account", slog.String("id", id))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"id":      id,
			"message": "account created successfully",
		}))
	}
}
