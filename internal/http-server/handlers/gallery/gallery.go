// Package gallery обработчики галереи. Изображения принимаются
// multipart-формой и живут во внешнем медиа-хранилище; замена и удаление
// записи удаляют объект у провайдера.
package gallery

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/http-server/upload"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Service контракт бизнес-уровня галереи.
type Service interface {
	CreateGalleryItem(ctx context.Context, adminID, title, description, imagePath string) (*models.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error)
	ListGalleryItems(ctx context.Context) ([]*models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id, title, description, imagePath string) (*models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error
}

// NewCreate
// @Summary Добавление элемента галереи
// @Tags gallery
// @Accept  multipart/form-data
// @Produce json
// @Param   title formData string true "Заголовок"
// @Param   description formData string false "Описание"
// @Param   image formData file true "Файл изображения"
// @Success 201 {object} response.Response "Элемент создан"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/gallery [post]
func NewCreate(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.NewCreate"

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

		imagePath, err := upload.SaveTemp(r, "image")
		if err != nil {
			log.Error("failed to save uploaded image", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process uploaded file"))
			return
		}
		if imagePath == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("image file is required"))
			return
		}

		g, err := svc.CreateGalleryItem(r.Context(), principal.ID, title, r.FormValue("description"), imagePath)
		if err != nil {
			log.Error("failed to create gallery item", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create gallery item"))
			return
		}

		log.Info("gallery item created", slog.String("id", g.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(g))
	}
}

// NewList
// @Summary Список элементов галереи
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response "Галерея, новые первыми"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /gallery [get]
func NewList(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		list, err := svc.ListGalleryItems(r.Context())
		if err != nil {
			log.Error("failed to list gallery", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list gallery"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(list))
	}
}

// NewRead
// @Summary Элемент галереи по ID
// @Tags gallery
// @Produce json
// @Param   id path string true "ID элемента"
// @Success 200 {object} response.Response "Элемент галереи"
// @Failure 404 {object} response.Response "Элемент не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /gallery/{id} [get]
func NewRead(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.NewRead"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		g, err := svc.GetGalleryItem(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("gallery item not found"))
				return
			}
			log.Error("failed to read gallery item", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read gallery item"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(g))
	}
}

// NewUpdate
// @Summary Обновление элемента галереи
// @Tags gallery
// @Accept  multipart/form-data
// @Produce json
// @Param   id path string true "ID элемента"
// @Param   title formData string false "Новый заголовок"
// @Param   description formData string false "Новое описание"
// @Param   image formData file false "Новое изображение; старое удаляется у провайдера"
// @Success 200 {object} response.Response "Элемент обновлён"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 404 {object} response.Response "Элемент не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/gallery/{id} [put]
func NewUpdate(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.NewUpdate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := r.ParseMultipartForm(upload.MaxMemory); err != nil {
			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse form"))
			return
		}

		imagePath, err := upload.SaveTemp(r, "image")
		if err != nil {
			log.Error("failed to save uploaded image", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process uploaded file"))
			return
		}

		g, err := svc.UpdateGalleryItem(r.Context(), chi.URLParam(r, "id"),
			r.FormValue("title"), r.FormValue("description"), imagePath)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("gallery item not found"))
				return
			}
			log.Error("failed to update gallery item", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update gallery item"))
			return
		}

		log.Info("gallery item updated", slog.String("id", g.ID))
		render.JSON(w, r, response.StatusOKWithData(g))
	}
}

// NewRemove
// @Summary Удаление элемента галереи
// @Tags gallery
// @Produce json
// @Param   id path string true "ID элемента"
// @Success 200 {object} response.Response "Элемент удалён вместе с объектом хранилища"
// @Failure 404 {object} response.Response "Элемент не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/gallery/{id} [delete]
func NewRemove(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.NewRemove"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if err := svc.DeleteGalleryItem(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("gallery item not found"))
				return
			}
			log.Error("failed to delete gallery item", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete gallery item"))
			return
		}

		log.Info("gallery item deleted", slog.String("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "gallery item deleted successfully",
		}))
	}
}
