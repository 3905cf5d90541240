// Package research обработчики загрузок исследовательских материалов:
// пользователи загружают PDF и изображения, выдача общая.
package research

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
	"github.com/ayushsetu/credential-registry/internal/models"
)

// Service контракт бизнес-уровня загрузок исследований.
type Service interface {
	CreateResearchUpload(ctx context.Context, userID, title, description, filePath string) (*models.ResearchUpload, error)
	ListResearchUploads(ctx context.Context) ([]*models.ResearchUpload, error)
}

// NewUpload
// @Summary Загрузка исследовательского материала
// @Tags research
// @Accept  multipart/form-data
// @Produce json
// @Param   title formData string true "Заголовок"
// @Param   description formData string false "Описание"
// @Param   file formData file true "PDF или изображение"
// @Success 201 {object} response.Response "Материал загружен"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /research [post]
func NewUpload(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.research.NewUpload"

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

		title := r.FormValue("title")
		if title == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("title is required"))
			return
		}

		filePath, err := upload.SaveTemp(r, "file")
		if err != nil {
			log.Error("failed to save uploaded file", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process uploaded file"))
			return
		}
		if filePath == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("file is required"))
			return
		}

		u, err := svc.CreateResearchUpload(r.Context(), principal.ID, title, r.FormValue("description"), filePath)
		if err != nil {
			log.Error("failed to create research upload", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload research material"))
			return
		}

		log.Info("research material uploaded", slog.String("id", u.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(u))
	}
}

// NewList
// @Summary Список исследовательских материалов
// @Tags research
// @Produce json
// @Success 200 {object} response.Response "Материалы, новые первыми"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /research [get]
func NewList(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.research.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		list, err := svc.ListResearchUploads(r.Context())
		if err != nil {
			log.Error("failed to list research uploads", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list research materials"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(list))
	}
}
