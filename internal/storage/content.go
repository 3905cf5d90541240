package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayushsetu/credential-registry/internal/models"
)

// CreateAnnouncement сохраняет объявление и возвращает его ID.
func (s *Storage) CreateAnnouncement(ctx context.Context, a models.Announcement) (string, error) {
	const op = "storage.CreateAnnouncement"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO announcements (title, description, is_published, published_at, created_by)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Description, a.IsPublished, a.PublishedAt, a.CreatedBy).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

const announcementColumns = `id, title, description, is_published, published_at, created_by, created_at`

func scanAnnouncement(row interface{ Scan(...any) error }) (*models.Announcement, error) {
	a := &models.Announcement{}
	var publishedAt sql.NullTime
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.IsPublished, &publishedAt,
		&a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}
	return a, nil
}

// GetAnnouncement возвращает объявление по ID.
func (s *Storage) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "storage.GetAnnouncement"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	a, err := scanAnnouncement(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(op, err)
	}
	return a, nil
}

// ListAnnouncements возвращает объявления, новые первыми. При publishedOnly
// скрытые объявления не попадают в выдачу.
func (s *Storage) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*models.Announcement, error) {
	const op = "storage.ListAnnouncements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements`
	if publishedOnly {
		query += ` WHERE is_published`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, translate(op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return result, nil
}

// UpdateAnnouncement обновляет текст и статус публикации объявления.
func (s *Storage) UpdateAnnouncement(ctx context.Context, a *models.Announcement) error {
	const op = "storage.UpdateAnnouncement"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE announcements
			  SET title = $1, description = $2, is_published = $3, published_at = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query, a.Title, a.Description, a.IsPublished, a.PublishedAt, a.ID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteAnnouncement удаляет объявление.
func (s *Storage) DeleteAnnouncement(ctx context.Context, id string) error {
	const op = "storage.DeleteAnnouncement"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CreateGalleryItem сохраняет элемент галереи и возвращает его ID.
func (s *Storage) CreateGalleryItem(ctx context.Context, g models.GalleryItem) (string, error) {
	const op = "storage.CreateGalleryItem"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO gallery_items (title, description, image_url, image_public_id, created_by)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		g.Title, g.Description, g.ImageURL, g.ImagePublicID, g.CreatedBy).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

const galleryColumns = `id, title, description, image_url, image_public_id, created_by, created_at`

func scanGalleryItem(row interface{ Scan(...any) error }) (*models.GalleryItem, error) {
	g := &models.GalleryItem{}
	var description sql.NullString
	if err := row.Scan(&g.ID, &g.Title, &description, &g.ImageURL, &g.ImagePublicID,
		&g.CreatedBy, &g.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		g.Description = description.String
	}
	return g, nil
}

// GetGalleryItem возвращает элемент галереи по ID.
func (s *Storage) GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error) {
	const op = "storage.GetGalleryItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id = $1`
	g, err := scanGalleryItem(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(op, err)
	}
	return g, nil
}

// ListGalleryItems возвращает галерею, новые первыми.
func (s *Storage) ListGalleryItems(ctx context.Context) ([]*models.GalleryItem, error) {
	const op = "storage.ListGalleryItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + galleryColumns + ` FROM gallery_items ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, translate(op, err)
		}
		result = append(result, g)
	}
	if err = rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return result, nil
}

// UpdateGalleryItem обновляет заголовок, описание и изображение элемента.
func (s *Storage) UpdateGalleryItem(ctx context.Context, g *models.GalleryItem) error {
	const op = "storage.UpdateGalleryItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE gallery_items
			  SET title = $1, description = $2, image_url = $3, image_public_id = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query, g.Title, g.Description, g.ImageURL, g.ImagePublicID, g.ID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteGalleryItem удаляет элемент галереи.
func (s *Storage) DeleteGalleryItem(ctx context.Context, id string) error {
	const op = "storage.DeleteGalleryItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CreateResearchUpload сохраняет запись о загруженном материале.
func (s *Storage) CreateResearchUpload(ctx context.Context, r models.ResearchUpload) (string, error) {
	const op = "storage.CreateResearchUpload"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO research_uploads (title, description, file_url, file_public_id, uploaded_by)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		r.Title, r.Description, r.FileURL, r.FilePublicID, r.UploadedBy).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

// ListResearchUploads возвращает загруженные материалы, новые первыми.
func (s *Storage) ListResearchUploads(ctx context.Context) ([]*models.ResearchUpload, error) {
	const op = "storage.ListResearchUploads"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, file_url, file_public_id, uploaded_by, created_at
			  FROM research_uploads ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ResearchUpload
	for rows.Next() {
		r := &models.ResearchUpload{}
		var description sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &description, &r.FileURL, &r.FilePublicID,
			&r.UploadedBy, &r.CreatedAt); err != nil {
			return nil, translate(op, err)
		}
		if description.Valid {
			r.Description = description.String
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return result, nil
}
