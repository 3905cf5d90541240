package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayushsetu/credential-registry/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Дубликат email или телефона даёт ErrAlreadyExists от ограничителя базы.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (fullname, email, phone_number, password_hash, role, registered_as)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Fullname, user.Email, user.PhoneNumber, user.PasswordHash,
		models.RoleUser, models.RegisteredAsNone).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

const userColumns = `id, fullname, email, phone_number, password_hash, role,
	      registered_as, profile_picture_url, is_email_verified, refresh_token, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var pictureURL, refreshToken sql.NullString
	if err := row.Scan(&u.ID, &u.Fullname, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&u.Role, &u.RegisteredAs, &pictureURL, &u.IsEmailVerified, &refreshToken,
		&u.CreatedAt); err != nil {
		return nil, err
	}
	if pictureURL.Valid {
		u.ProfilePictureURL = pictureURL.String
	}
	if refreshToken.Valid {
		u.RefreshToken = refreshToken.String
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, translate(op, err)
	}
	return u, nil
}

// FindUserByEmailOrPhone возвращает пользователя по email или телефону.
func (s *Storage) FindUserByEmailOrPhone(ctx context.Context, email, phoneNumber string) (*models.User, error) {
	const op = "storage.FindUserByEmailOrPhone"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone_number = $2`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email, phoneNumber))
	if err != nil {
		return nil, translate(op, err)
	}
	return u, nil
}

// UpdateUserRefreshToken сохраняет refresh-токен пользователя.
// Пустая строка очищает токен, инвалидируя все будущие обновления сессии.
func (s *Storage) UpdateUserRefreshToken(ctx context.Context, userID, refreshToken string) error {
	const op = "storage.UpdateUserRefreshToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET refresh_token = NULLIF($1, ''), updated_at = NOW() WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, refreshToken, userID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserDetails обновляет имя, email и хэш пароля пользователя.
func (s *Storage) UpdateUserDetails(ctx context.Context, user *models.User) error {
	const op = "storage.UpdateUserDetails"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET fullname = $1, email = $2, password_hash = $3, updated_at = NOW()
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, user.Fullname, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserProfilePicture сохраняет URL аватара пользователя.
func (s *Storage) UpdateUserProfilePicture(ctx context.Context, userID, pictureURL string) error {
	const op = "storage.UpdateUserProfilePicture"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET profile_picture_url = $1, updated_at = NOW() WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, pictureURL, userID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// SetUserRegisteredAs переводит тег профессиональной регистрации пользователя.
func (s *Storage) SetUserRegisteredAs(ctx context.Context, userID, registeredAs string) error {
	const op = "storage.SetUserRegisteredAs"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET registered_as = $1, updated_at = NOW() WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, registeredAs, userID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, translate(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя. Связанная анкета удаляется каскадно
// внешним ключом.
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return translate(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UserStats агрегированная статистика по пользователям и анкетам.
type UserStats struct {
	TotalUsers      int `json:"totalUsers"`
	VerifiedUsers   int `json:"verifiedUsers"`
	UnverifiedUsers int `json:"unverifiedUsers"`
	MedicalProfiles int `json:"medicalProfiles"`
	NonMedical      int `json:"nonMedicalProfiles"`
}

// CountUserStats подсчитывает статистику одним запросом.
func (s *Storage) CountUserStats(ctx context.Context) (*UserStats, error) {
	const op = "storage.CountUserStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM users WHERE is_email_verified),
			      (SELECT COUNT(*) FROM users WHERE NOT is_email_verified),
			      (SELECT COUNT(*) FROM medical_professionals),
			      (SELECT COUNT(*) FROM non_medical_professionals)`
	var st UserStats
	if err := s.DB.QueryRowContext(ctx, query).Scan(&st.TotalUsers, &st.VerifiedUsers,
		&st.UnverifiedUsers, &st.MedicalProfiles, &st.NonMedical); err != nil {
		return nil, translate(op, err)
	}
	return &st, nil
}
