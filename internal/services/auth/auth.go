// Package auth содержит логику бизнес-уровня для регистрации и сессий
// пользователей и администраторов. Оба контура используют общий механизм
// токенов, но независимые домены подписи и независимые хранилища.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayushsetu/credential-registry/internal/lib/jwt"
	"github.com/ayushsetu/credential-registry/internal/lib/password"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

// Ошибки бизнес-уровня. Наружу уходят только они: детали хранилища
// и криптографии не покидают сервис.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	FindUserByEmailOrPhone(ctx context.Context, email, phoneNumber string) (*models.User, error)
	UpdateUserRefreshToken(ctx context.Context, userID, refreshToken string) error
	UpdateUserDetails(ctx context.Context, user *models.User) error
	UpdateUserProfilePicture(ctx context.Context, userID, pictureURL string) error
}

// AdminRepository описывает контракт для работы с администраторами.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (string, error)
	GetAdmin(ctx context.Context, adminID string) (*models.Admin, error)
	FindAdminByEmailOrPhone(ctx context.Context, email, phoneNumber string) (*models.Admin, error)
	UpdateAdminRefreshToken(ctx context.Context, adminID, refreshToken string) error
	UpdateAdminDetails(ctx context.Context, admin *models.Admin) error
}

// TokenPair пара access/refresh токенов одной сессии.
type TokenPair struct {
	Access  string
	Refresh string
}

// Service отвечает за регистрацию, вход, обновление и завершение сессий.
type Service struct {
	users    UserRepository
	admins   AdminRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, admins AdminRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// RegisterUser создает нового пользователя с хэшированием пароля.
// Дубликат email или телефона отдаёт ошибку хранилища ErrAlreadyExists:
// сначала предварительной проверкой, затем уникальным индексом при вставке.
func (s *Service) RegisterUser(ctx context.Context, fullname, email, phoneNumber, rawPassword string) (string, error) {
	const op = "auth.RegisterUser"
	if _, err := s.users.FindUserByEmailOrPhone(ctx, email, phoneNumber); err == nil {
		return "", storage.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Fullname:     fullname,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
	}
	return s.users.CreateUser(ctx, user)
}

// LoginUser проверяет учётные данные и открывает сессию: выпускает пару
// токенов пользовательского домена и сохраняет refresh-токен в хранилище.
func (s *Service) LoginUser(ctx context.Context, emailOrPhone, rawPassword string) (*models.User, *TokenPair, error) {
	const op = "auth.LoginUser"
	user, err := s.users.FindUserByEmailOrPhone(ctx, emailOrPhone, emailOrPhone)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issuePair(user.ID, user.Role, jwt.DomainUser)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserRefreshToken(ctx, user.ID, pair.Refresh); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, pair, nil
}

// RefreshUser обновляет сессию пользователя. Предъявленный refresh-токен
// должен пройти проверку подписи и совпасть с сохранённым в хранилище;
// после обновления пара токенов ротируется.
func (s *Service) RefreshUser(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	const op = "auth.RefreshUser"
	claims, err := s.jwtMaker.VerifyRefresh(refreshToken, jwt.DomainUser)
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}
	user, err := s.users.GetUser(ctx, claims.SubjectID())
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, nil, ErrInvalidRefresh
	}
	pair, err := s.issuePair(user.ID, user.Role, jwt.DomainUser)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserRefreshToken(ctx, user.ID, pair.Refresh); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, pair, nil
}

// LogoutUser завершает сессию, очищая сохранённый refresh-токен.
func (s *Service) LogoutUser(ctx context.Context, userID string) error {
	return s.users.UpdateUserRefreshToken(ctx, userID, "")
}

// UpdateUserDetails обновляет имя и email; при непустом newPassword меняет
// пароль, предварительно сверив oldPassword с текущим хэшем.
func (s *Service) UpdateUserDetails(ctx context.Context, userID, fullname, email, oldPassword, newPassword string) (*models.User, error) {
	const op = "auth.UpdateUserDetails"
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if fullname != "" {
		user.Fullname = fullname
	}
	if email != "" {
		user.Email = email
	}
	if newPassword != "" {
		if err := password.Compare(user.PasswordHash, oldPassword); err != nil {
			return nil, ErrInvalidCredentials
		}
		hashed, err := password.Hash(newPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hashed
	}
	if err := s.users.UpdateUserDetails(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUserProfilePicture сохраняет URL нового аватара.
func (s *Service) UpdateUserProfilePicture(ctx context.Context, userID, pictureURL string) error {
	return s.users.UpdateUserProfilePicture(ctx, userID, pictureURL)
}

// RegisterAdmin создает нового администратора с хэшированием пароля.
func (s *Service) RegisterAdmin(ctx context.Context, fullname, email, phoneNumber, rawPassword string) (string, error) {
	const op = "auth.RegisterAdmin"
	if _, err := s.admins.FindAdminByEmailOrPhone(ctx, email, phoneNumber); err == nil {
		return "", storage.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	admin := models.Admin{
		Fullname:     fullname,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
	}
	return s.admins.CreateAdmin(ctx, admin)
}

// LoginAdmin проверяет учётные данные и открывает сессию в административном
// домене подписи.
func (s *Service) LoginAdmin(ctx context.Context, emailOrPhone, rawPassword string) (*models.Admin, *TokenPair, error) {
	const op = "auth.LoginAdmin"
	admin, err := s.admins.FindAdminByEmailOrPhone(ctx, emailOrPhone, emailOrPhone)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := password.Compare(admin.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issuePair(admin.ID, admin.Role, jwt.DomainAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.admins.UpdateAdminRefreshToken(ctx, admin.ID, pair.Refresh); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return admin, pair, nil
}

// RefreshAdmin обновляет административную сессию с теми же инвариантами,
// что и RefreshUser.
func (s *Service) RefreshAdmin(ctx context.Context, refreshToken string) (*models.Admin, *TokenPair, error) {
	const op = "auth.RefreshAdmin"
	claims, err := s.jwtMaker.VerifyRefresh(refreshToken, jwt.DomainAdmin)
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}
	admin, err := s.admins.GetAdmin(ctx, claims.SubjectID())
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}
	if admin.RefreshToken == "" || admin.RefreshToken != refreshToken {
		return nil, nil, ErrInvalidRefresh
	}
	pair, err := s.issuePair(admin.ID, admin.Role, jwt.DomainAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.admins.UpdateAdminRefreshToken(ctx, admin.ID, pair.Refresh); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return admin, pair, nil
}

// LogoutAdmin завершает административную сессию.
func (s *Service) LogoutAdmin(ctx context.Context, adminID string) error {
	return s.admins.UpdateAdminRefreshToken(ctx, adminID, "")
}

// UpdateAdminDetails обновляет имя и email; смена пароля требует
// подтверждения текущим, как и в пользовательском контуре.
func (s *Service) UpdateAdminDetails(ctx context.Context, adminID, fullname, email, oldPassword, newPassword string) (*models.Admin, error) {
	const op = "auth.UpdateAdminDetails"
	admin, err := s.admins.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if fullname != "" {
		admin.Fullname = fullname
	}
	if email != "" {
		admin.Email = email
	}
	if newPassword != "" {
		if err := password.Compare(admin.PasswordHash, oldPassword); err != nil {
			return nil, ErrInvalidCredentials
		}
		hashed, err := password.Hash(newPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		admin.PasswordHash = hashed
	}
	if err := s.admins.UpdateAdminDetails(ctx, admin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return admin, nil
}

func (s *Service) issuePair(subjectID, role, domain string) (*TokenPair, error) {
	access, err := s.jwtMaker.IssueAccess(subjectID, role, domain)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMaker.IssueRefresh(subjectID, domain)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
