// Package adminusers обработчики панели администратора: статистика,
// списки и карточки пользователей, удаление учётных записей.
package adminusers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/services/adminops"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Service контракт бизнес-уровня панели администратора.
type Service interface {
	Stats(ctx context.Context) (*storage.UserStats, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	UserDetail(ctx context.Context, userID string) (*adminops.UserDetail, error)
	DeleteUser(ctx context.Context, userID string) error
}

// NewStats
// @Summary Агрегированная статистика пользователей
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response "Счётчики пользователей и анкет"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/users/stats [get]
func NewStats(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.adminusers.NewStats"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		stats, err := svc.Stats(r.Context())
		if err != nil {
			log.Error("failed to count stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to count stats"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(stats))
	}
}

// NewList
// @Summary Список пользователей
// @Tags admin
// @Produce json
// @Param   limit  query int false "Размер страницы (по умолчанию 20)"
// @Param   offset query int false "Смещение"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func NewList(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.adminusers.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		users, err := svc.ListUsers(r.Context(), limit, offset)
		if err != nil {
			log.Error("failed to list users", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list users"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(users))
	}
}

// NewRead
// @Summary Карточка пользователя с анкетой
// @Tags admin
// @Produce json
// @Param   id path string true "ID пользователя"
// @Success 200 {object} response.Response "Пользователь и его анкета, если подана"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [get]
func NewRead(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.adminusers.NewRead"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		detail, err := svc.UserDetail(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			log.Error("failed to read user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read user"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(detail))
	}
}

// NewRemove
// @Summary Удаление пользователя
// @Tags admin
// @Produce json
// @Param   id path string true "ID пользователя"
// @Success 200 {object} response.Response "Пользователь и анкета удалены"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [delete]
func NewRemove(log *slog.Logger, svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.adminusers.NewRemove"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if err := svc.DeleteUser(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			log.Error("failed to delete user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete user"))
			return
		}

		log.Info("user deleted", slog.String("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "user deleted successfully",
		}))
	}
}
