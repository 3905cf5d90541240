// Package announcements обработчики объявлений: администраторы управляют
// объявлениями, публичная выдача видит только опубликованные.
package announcements

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Service контракт бизнес-уровня объявлений.
type Service interface {
	CreateAnnouncement(ctx context.Context, adminID, title, description string, publish bool) (*models.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id, title, description string, publish *bool) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
}

type CreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=3"`
	IsPublished bool   `json:"isPublished"`
}

type UpdateRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,min=3"`
	IsPublished *bool  `json:"isPublished"`
}

// NewCreate
// @Summary Создание объявления
// @Tags announcements
// @Accept  json
// @Produce json
// @Param   createRequest body CreateRequest true "Заголовок, текст и статус публикации"
// @Success 201 {object} response.Response "Объявление создано"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/announcements [post]
func NewCreate(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.announcements.NewCreate"
		var createRequest CreateRequest

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

		if err := render.DecodeJSON(r.Body, &createRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(createRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		a, err := svc.CreateAnnouncement(r.Context(), principal.ID, createRequest.Title,
			createRequest.Description, createRequest.IsPublished)
		if err != nil {
			log.Error("failed to create announcement", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create announcement"))
			return
		}

		log.Info("announcement created", slog.String("id", a.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(a))
	}
}

// NewList
// @Summary Список объявлений
// @Tags announcements
// @Produce json
// @Success 200 {object} response.Response "Объявления, новые первыми"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /announcements [get]
func NewList(log *slog.Logger, svc Service, publishedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.announcements.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		list, err := svc.ListAnnouncements(r.Context(), publishedOnly)
		if err != nil {
			log.Error("failed to list announcements", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list announcements"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(list))
	}
}

// NewRead
// @Summary Объявление по ID
// @Tags announcements
// @Produce json
// @Param   id path string true "ID объявления"
// @Success 200 {object} response.Response "Объявление"
// @Failure 404 {object} response.Response "Объявление не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /announcements/{id} [get]
func NewRead(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.announcements.NewRead"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		a, err := svc.GetAnnouncement(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("announcement not found"))
				return
			}
			log.Error("failed to read announcement", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read announcement"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(a))
	}
}

// NewUpdate
// @Summary Обновление объявления
// @Tags announcements
// @Accept  json
// @Produce json
// @Param   id path string true "ID объявления"
// @Param   updateRequest body UpdateRequest true "Новые значения; пустые поля игнорируются"
// @Success 200 {object} response.Response "Объявление обновлено"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 404 {object} response.Response "Объявление не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/announcements/{id} [put]
func NewUpdate(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.announcements.NewUpdate"
		var updateRequest UpdateRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		a, err := svc.UpdateAnnouncement(r.Context(), chi.URLParam(r, "id"),
			updateRequest.Title, updateRequest.Description, updateRequest.IsPublished)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("announcement not found"))
				return
			}
			log.Error("failed to update announcement", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update announcement"))
			return
		}

		log.Info("announcement updated", slog.String("id", a.ID))
		render.JSON(w, r, response.StatusOKWithData(a))
	}
}

// NewRemove
// @Summary Удаление объявления
// @Tags announcements
// @Produce json
// @Param   id path string true "ID объявления"
// @Success 200 {object} response.Response "Объявление удалено"
// @Failure 404 {object} response.Response "Объявление не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/announcements/{id} [delete]
func NewRemove(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.announcements.NewRemove"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if err := svc.DeleteAnnouncement(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("announcement not found"))
				return
			}
			log.Error("failed to delete announcement", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete announcement"))
			return
		}

		log.Info("announcement deleted", slog.String("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "announcement deleted successfully",
		}))
	}
}
