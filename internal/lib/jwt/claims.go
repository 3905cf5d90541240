// Package jwt реализует выпуск и проверку JWT токенов для двух независимых
// доменов подписи: пользовательского и административного. У каждого домена
// свои секреты и время жизни access- и refresh-токенов.
package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ayushsetu/credential-registry/internal/config"
)

// Ошибки проверки токена. Истечение срока отделено от прочей невалидности,
// чтобы клиент мог решить, имеет ли смысл обновление.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims данные, зашитые в токен. SubjectID хранится в стандартном
// клейме sub, роль — в отдельном поле; refresh-токен роли не несёт.
type Claims struct {
	Role                 string `json:"role,omitempty"`
	jwt.RegisteredClaims        // стандартные клеймы: Subject, IssuedAt, ExpiresAt
}

// SubjectID возвращает идентификатор принципала из клейма sub.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// Maker описывает интерфейс выпуска и проверки токенов.
type Maker interface {
	IssueAccess(subjectID, role, domain string) (string, error)
	IssueRefresh(subjectID, domain string) (string, error)
	VerifyAccess(tokenStr, domain string) (*Claims, error)
	VerifyRefresh(tokenStr, domain string) (*Claims, error)
	VerifyAccessAny(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker с фиксированным упорядоченным набором доменов.
type MakerImpl struct {
	domains map[string]config.TokenDomain
	order   []string
}

// DomainUser и DomainAdmin — имена доменов подписи. Порядок проверки
// в VerifyAccessAny фиксирован: сначала user, затем admin.
const (
	DomainUser  = "user"
	DomainAdmin = "admin"
)

// NewMaker создаёт Maker на основе секции tokens конфига.
func NewMaker(cfg config.Tokens) *MakerImpl {
	return &MakerImpl{
		domains: map[string]config.TokenDomain{
			DomainUser:  cfg.User,
			DomainAdmin: cfg.Admin,
		},
		order: []string{DomainUser, DomainAdmin},
	}
}
