// Package adminops содержит операции панели администратора над
// пользователями: агрегированную статистику, списки и карточки
// пользователей с их анкетами, удаление учётных записей.
package adminops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Store описывает контракт хранилища для операций администратора.
type Store interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	CountUserStats(ctx context.Context) (*storage.UserStats, error)
	GetMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.MedicalProfessional, error)
	GetNonMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.NonMedicalProfessional, error)
}

// StatsCache кэширует агрегаты статистики. Nil-реализация не используется:
// отсутствие кэша выражается nil-полем сервиса.
type StatsCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

const statsCacheKey = "admin:stats"
const statsCacheTTL = time.Minute

// UserDetail карточка пользователя с анкетой, если она подана.
type UserDetail struct {
	User       models.User                    `json:"user"`
	Medical    *models.MedicalProfessional    `json:"medicalProfile,omitempty"`
	NonMedical *models.NonMedicalProfessional `json:"nonMedicalProfile,omitempty"`
}

// Service операции панели администратора.
type Service struct {
	store Store
	cache StatsCache
	log   *slog.Logger
}

// New создает новый экземпляр Service. Nil cache отключает кэширование.
func New(store Store, cache StatsCache, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Stats возвращает агрегированную статистику, при возможности из кэша.
// Ошибка кэша не фатальна: статистика пересчитывается из базы.
func (s *Service) Stats(ctx context.Context) (*storage.UserStats, error) {
	const op = "adminops.Stats"

	if s.cache != nil {
		var cached storage.UserStats
		found, err := s.cache.Get(statsCacheKey, &cached)
		if err != nil {
			s.log.Error("stats cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	stats, err := s.store.CountUserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(statsCacheKey, stats, statsCacheTTL); err != nil {
			s.log.Error("stats cache write failed", sl.Err(err))
		}
	}
	return stats, nil
}

// ListUsers возвращает страницу пользователей без секретных полей.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.store.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.Sanitized())
	}
	return result, nil
}

// UserDetail возвращает карточку пользователя. Анкета подгружается по тегу
// RegisteredAs; отсутствие анкеты при тегах medical_prof/non_medical_prof
// логируется, но карточку не ломает.
func (s *Service) UserDetail(ctx context.Context, userID string) (*UserDetail, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{User: user.Sanitized()}
	switch user.RegisteredAs {
	case models.RegisteredAsMedical:
		profile, err := s.store.GetMedicalProfessionalByUserID(ctx, userID)
		if err != nil {
			s.log.Error("medical profile missing for registered user", sl.Err(err))
		} else {
			detail.Medical = profile
		}
	case models.RegisteredAsNonMedical:
		profile, err := s.store.GetNonMedicalProfessionalByUserID(ctx, userID)
		if err != nil {
			s.log.Error("non-medical profile missing for registered user", sl.Err(err))
		} else {
			detail.NonMedical = profile
		}
	}
	return detail, nil
}

// DeleteUser удаляет пользователя вместе с анкетой и сбрасывает кэш статистики.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(statsCacheKey); err != nil {
			s.log.Error("stats cache invalidate failed", sl.Err(err))
		}
	}
	return nil
}
