// Package content содержит логику публичных материалов платформы:
// объявлений администраторов, галереи и загрузок исследований.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/mediastore"
	"github.com/ayushsetu/credential-registry/internal/models"
)

// Store описывает контракт хранилища материалов.
type Store interface {
	CreateAnnouncement(ctx context.Context, a models.Announcement) (string, error)
	GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error

	CreateGalleryItem(ctx context.Context, g models.GalleryItem) (string, error)
	GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error)
	ListGalleryItems(ctx context.Context) ([]*models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, g *models.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error

	CreateResearchUpload(ctx context.Context, r models.ResearchUpload) (string, error)
	ListResearchUploads(ctx context.Context) ([]*models.ResearchUpload, error)
}

// MediaStore загружает и удаляет объекты внешнего медиа-хранилища.
type MediaStore interface {
	UploadFile(ctx context.Context, localPath, folder string) (*mediastore.UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// Service отвечает за материалы платформы.
type Service struct {
	store Store
	media MediaStore
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, media MediaStore, log *slog.Logger) *Service {
	return &Service{store: store, media: media, log: log}
}

// CreateAnnouncement создает объявление. Публикация проставляет отметку
// времени публикации.
func (s *Service) CreateAnnouncement(ctx context.Context, adminID, title, description string, publish bool) (*models.Announcement, error) {
	const op = "content.CreateAnnouncement"
	a := models.Announcement{
		Title:       title,
		Description: description,
		IsPublished: publish,
		CreatedBy:   adminID,
	}
	if publish {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	id, err := s.store.CreateAnnouncement(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.ID = id
	return &a, nil
}

// GetAnnouncement возвращает объявление по ID.
func (s *Service) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	return s.store.GetAnnouncement(ctx, id)
}

// ListAnnouncements возвращает объявления. Для публичной выдачи скрытые
// объявления не возвращаются.
func (s *Service) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*models.Announcement, error) {
	return s.store.ListAnnouncements(ctx, publishedOnly)
}

// UpdateAnnouncement обновляет текст и статус публикации. Первая публикация
// проставляет отметку времени, снятие с публикации её не стирает.
func (s *Service) UpdateAnnouncement(ctx context.Context, id, title, description string, publish *bool) (*models.Announcement, error) {
	const op = "content.UpdateAnnouncement"
	a, err := s.store.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		a.Title = title
	}
	if description != "" {
		a.Description = description
	}
	if publish != nil {
		a.IsPublished = *publish
		if *publish && a.PublishedAt == nil {
			now := time.Now().UTC()
			a.PublishedAt = &now
		}
	}
	if err := s.store.UpdateAnnouncement(ctx, a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// DeleteAnnouncement удаляет объявление.
func (s *Service) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.store.DeleteAnnouncement(ctx, id)
}

// CreateGalleryItem загружает изображение и создает элемент галереи.
func (s *Service) CreateGalleryItem(ctx context.Context, adminID, title, description, imagePath string) (*models.GalleryItem, error) {
	const op = "content.CreateGalleryItem"
	uploaded, err := s.media.UploadFile(ctx, imagePath, "registry/gallery")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	g := models.GalleryItem{
		Title:         title,
		Description:   description,
		ImageURL:      uploaded.SecureURL,
		ImagePublicID: uploaded.PublicID,
		CreatedBy:     adminID,
	}
	id, err := s.store.CreateGalleryItem(ctx, g)
	if err != nil {
		// запись не создана, объект в хранилище не должен осиротеть
		if destroyErr := s.media.Destroy(ctx, uploaded.PublicID); destroyErr != nil {
			s.log.Error("failed to destroy orphaned image", sl.Err(destroyErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	g.ID = id
	return &g, nil
}

// GetGalleryItem возвращает элемент галереи по ID.
func (s *Service) GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error) {
	return s.store.GetGalleryItem(ctx, id)
}

// ListGalleryItems возвращает галерею.
func (s *Service) ListGalleryItems(ctx context.Context) ([]*models.GalleryItem, error) {
	return s.store.ListGalleryItems(ctx)
}

// UpdateGalleryItem обновляет элемент галереи. Непустой imagePath заменяет
// изображение: новое загружается, старый объект удаляется у провайдера.
func (s *Service) UpdateGalleryItem(ctx context.Context, id, title, description, imagePath string) (*models.GalleryItem, error) {
	const op = "content.UpdateGalleryItem"
	g, err := s.store.GetGalleryItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		g.Title = title
	}
	if description != "" {
		g.Description = description
	}

	oldPublicID := ""
	if imagePath != "" {
		uploaded, err := s.media.UploadFile(ctx, imagePath, "registry/gallery")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		oldPublicID = g.ImagePublicID
		g.ImageURL = uploaded.SecureURL
		g.ImagePublicID = uploaded.PublicID
	}

	if err := s.store.UpdateGalleryItem(ctx, g); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if oldPublicID != "" {
		if err := s.media.Destroy(ctx, oldPublicID); err != nil {
			s.log.Error("failed to destroy replaced image", sl.Err(err))
		}
	}
	return g, nil
}

// DeleteGalleryItem удаляет элемент галереи вместе с объектом у провайдера.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	const op = "content.DeleteGalleryItem"
	g, err := s.store.GetGalleryItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGalleryItem(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.media.Destroy(ctx, g.ImagePublicID); err != nil {
		s.log.Error("failed to destroy gallery image", sl.Err(err))
	}
	return nil
}

// CreateResearchUpload загружает материал исследования и сохраняет запись.
func (s *Service) CreateResearchUpload(ctx context.Context, userID, title, description, filePath string) (*models.ResearchUpload, error) {
	const op = "content.CreateResearchUpload"
	uploaded, err := s.media.UploadFile(ctx, filePath, "registry/research")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r := models.ResearchUpload{
		Title:        title,
		Description:  description,
		FileURL:      uploaded.SecureURL,
		FilePublicID: uploaded.PublicID,
		UploadedBy:   userID,
	}
	id, err := s.store.CreateResearchUpload(ctx, r)
	if err != nil {
		if destroyErr := s.media.Destroy(ctx, uploaded.PublicID); destroyErr != nil {
			s.log.Error("failed to destroy orphaned file", sl.Err(destroyErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r.ID = id
	return &r, nil
}

// ListResearchUploads возвращает материалы исследований.
func (s *Service) ListResearchUploads(ctx context.Context) ([]*models.ResearchUpload, error) {
	return s.store.ListResearchUploads(ctx)
}
