// Package profregister обработчики подачи анкет профессиональной регистрации.
// Анкета приходит multipart-формой с плоскими полями и фотографией; при любом
// нарушении правил возвращается полный список ошибок и ничего не сохраняется.
package profregister

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/http-server/upload"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/lib/validation"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/services/professional"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Registrar принимает анкеты обоих типов.
type Registrar interface {
	RegisterMedical(ctx context.Context, userID string, form url.Values, photoPath string) (*models.MedicalProfessional, []validation.FieldError, error)
	RegisterNonMedical(ctx context.Context, userID string, form url.Values, photoPath string) (*models.NonMedicalProfessional, []validation.FieldError, error)
}

var _ Registrar = (*professional.Service)(nil)

// NewMedical
// @Summary Подача анкеты медицинского специалиста
// @Tags registration
// @Accept  multipart/form-data
// @Produce json
// @Success 201 {object} response.Response "Анкета принята"
// @Failure 400 {object} response.Response "Полный список нарушений правил анкеты"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 409 {object} response.Response "Анкета уже подана"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /medical-professional-registration [post]
func NewMedical(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profregister.NewMedical"
		handle(w, r, log, op, func(ctx context.Context, userID string, form url.Values, photoPath string) (any, []validation.FieldError, error) {
			return registrar.RegisterMedical(ctx, userID, form, photoPath)
		})
	}
}

// NewNonMedical
// @Summary Подача анкеты немедицинского специалиста
// @Tags registration
// @Accept  multipart/form-data
// @Produce json
// @Success 201 {object} response.Response "Анкета принята"
// @Failure 400 {object} response.Response "Полный список нарушений правил анкеты"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 409 {object} response.Response "Анкета уже подана"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /non-medical-professional-registration [post]
func NewNonMedical(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profregister.NewNonMedical"
		handle(w, r, log, op, func(ctx context.Context, userID string, form url.Values, photoPath string) (any, []validation.FieldError, error) {
			return registrar.RegisterNonMedical(ctx, userID, form, photoPath)
		})
	}
}

type registerFunc func(ctx context.Context, userID string, form url.Values, photoPath string) (any, []validation.FieldError, error)

func handle(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, register registerFunc) {
	log = log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := mware.PrincipalFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized: no token provided"))
		return
	}

	if err := r.ParseMultipartForm(upload.MaxMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse form"))
		return
	}

	photoPath, err := upload.SaveTemp(r, "personalPhoto")
	if err != nil {
		log.Error("failed to save uploaded photo", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process uploaded file"))
		return
	}

	profile, fieldErrs, err := register(r.Context(), principal.ID, url.Values(r.MultipartForm.Value), photoPath)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Error("profile already submitted")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("professional registration already submitted"))
			return
		}
		if errors.Is(err, professional.ErrPhotoUpload) {
			log.Error("photo upload rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Failed to upload personal photo"))
			return
		}
		log.Error("failed to register profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit registration"))
		return
	}
	if len(fieldErrs) > 0 {
		// фотография не была отправлена провайдеру, временный файл больше не нужен
		if photoPath != "" {
			_ = os.Remove(photoPath)
		}
		log.Info("validation failed", slog.Int("violations", len(fieldErrs)))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FieldErrors(fieldErrs))
		return
	}

	log.Info("profile submitted", slog.String("user_id", principal.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(profile))
}
