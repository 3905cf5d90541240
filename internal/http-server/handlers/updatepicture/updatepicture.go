// Package updatepicture обработчик замены аватара пользователя: файл
// принимается из multipart-формы, загружается в медиа-хранилище, URL
// сохраняется в учётной записи.
package updatepicture

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/http-server/upload"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/mediastore"
)

// Uploader загружает локальный файл во внешнее медиа-хранилище.
type Uploader interface {
	UploadFile(ctx context.Context, localPath, folder string) (*mediastore.UploadResult, error)
}

// SaveFunc сохраняет URL нового аватара принципала.
type SaveFunc func(ctx context.Context, principalID, pictureURL string) error

// New
// @Summary Замена аватара
// @Tags auth
// @Accept  multipart/form-data
// @Produce json
// @Param   profilePicture formData file true "Файл изображения"
// @Success 200 {object} response.Response "Аватар обновлён"
// @Failure 400 {object} response.Response "Файл не передан"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /update-profile-picture [post]
func New(log *slog.Logger, uploader Uploader, save SaveFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.updatepicture.New"

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

		if err := r.ParseMultipartForm(upload.MaxMemory); err != nil {
			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse form"))
			return
		}

		path, err := upload.SaveTemp(r, "profilePicture")
		if err != nil {
			log.Error("failed to save uploaded file", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process uploaded file"))
			return
		}
		if path == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("profile picture file is required"))
			return
		}

		uploaded, err := uploader.UploadFile(r.Context(), path, "registry/avatars/"+principal.ID)
		if err != nil {
			log.Error("failed to upload picture", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload picture"))
			return
		}

		if err := save(r.Context(), principal.ID, uploaded.SecureURL); err != nil {
			log.Error("failed to save picture url", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update picture"))
			return
		}

		log.Info("picture updated", slog.String("id", principal.ID))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"profilePictureUrl": uploaded.SecureURL,
		}))
	}
}
