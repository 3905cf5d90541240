package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayushsetu/credential-registry/internal/models"
)

// CreateAdmin сохраняет нового администратора и возвращает его ID.
func (s *Storage) CreateAdmin(ctx context.Context, admin models.Admin) (string, error) {
	const op = "storage.CreateAdmin"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO admins (fullname, email, phone_number, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		admin.Fullname, admin.Email, admin.PhoneNumber, admin.PasswordHash,
		models.RoleAdmin).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

const adminColumns = `id, fullname, email, phone_number, password_hash, role,
	      profile_picture_url, refresh_token, created_at`

func scanAdmin(row interface{ Scan(...any) error }) (*models.Admin, error) {
	a := &models.Admin{}
	var pictureURL, refreshToken sql.NullString
	if err := row.Scan(&a.ID, &a.Fullname, &a.Email, &a.PhoneNumber, &a.PasswordHash,
		&a.Role, &pictureURL, &refreshToken, &a.CreatedAt); err != nil {
		return nil, err
	}
	if pictureURL.Valid {
		a.ProfilePictureURL = pictureURL.String
	}
	if refreshToken.Valid {
		a.RefreshToken = refreshToken.String
	}
	return a, nil
}

// GetAdmin возвращает администратора по его ID.
func (s *Storage) GetAdmin(ctx context.Context, adminID string) (*models.Admin, error) {
	const op = "storage.GetAdmin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	a, err := scanAdmin(s.DB.QueryRowContext(ctx, query, adminID))
	if err != nil {
		return nil, translate(op, err)
	}
	return a, nil
}

// FindAdminByEmailOrPhone возвращает администратора по email или телефону.
func (s *Storage) FindAdminByEmailOrPhone(ctx context.Context, email, phoneNumber string) (*models.Admin, error) {
	const op = "storage.FindAdminByEmailOrPhone"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1 OR phone_number = $2`
	a, err := scanAdmin(s.DB.QueryRowContext(ctx, query, email, phoneNumber))
	if err != nil {
		return nil, translate(op, err)
	}
	return a, nil
}

// UpdateAdminRefreshToken сохраняет refresh-токен администратора.
// Пустая строка очищает токен.
func (s *Storage) UpdateAdminRefreshToken(ctx context.Context, adminID, refreshToken string) error {
	const op = "storage.UpdateAdminRefreshToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE admins SET refresh_token = NULLIF($1, ''), updated_at = NOW() WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, refreshToken, adminID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateAdminDetails обновляет имя, email и хэш пароля администратора.
func (s *Storage) UpdateAdminDetails(ctx context.Context, admin *models.Admin) error {
	const op = "storage.UpdateAdminDetails"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE admins
			  SET fullname = $1, email = $2, password_hash = $3, updated_at = NOW()
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, admin.Fullname, admin.Email, admin.PasswordHash, admin.ID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
