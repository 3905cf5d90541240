package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IssueAccess создает access-токен с идентификатором субъекта и ролью,
// подписанный access-секретом указанного домена.
func (m *MakerImpl) IssueAccess(subjectID, role, domain string) (string, error) {
	const op = "jwt.IssueAccess"
	d, ok := m.domains[domain]
	if !ok {
		return "", fmt.Errorf("%s: unknown signing domain %q", op, domain)
	}
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(d.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(d.AccessSecret))
}

// IssueRefresh создает refresh-токен, несущий идентификатор субъекта и
// уникальный jti. Без jti два выпуска в пределах одной секунды совпадают
// байт в байт, и ротация после refresh ничего бы не меняла.
func (m *MakerImpl) IssueRefresh(subjectID, domain string) (string, error) {
	const op = "jwt.IssueRefresh"
	d, ok := m.domains[domain]
	if !ok {
		return "", fmt.Errorf("%s: unknown signing domain %q", op, domain)
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(d.RefreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(d.RefreshSecret))
}

// VerifyAccess проверяет access-токен секретом указанного домена.
func (m *MakerImpl) VerifyAccess(tokenStr, domain string) (*Claims, error) {
	const op = "jwt.VerifyAccess"
	d, ok := m.domains[domain]
	if !ok {
		return nil, fmt.Errorf("%s: unknown signing domain %q", op, domain)
	}
	return parse(op, tokenStr, d.AccessSecret)
}

// VerifyRefresh проверяет refresh-токен секретом указанного домена.
func (m *MakerImpl) VerifyRefresh(tokenStr, domain string) (*Claims, error) {
	const op = "jwt.VerifyRefresh"
	d, ok := m.domains[domain]
	if !ok {
		return nil, fmt.Errorf("%s: unknown signing domain %q", op, domain)
	}
	return parse(op, tokenStr, d.RefreshSecret)
}

// VerifyAccessAny проверяет access-токен каждым доменом в фиксированном
// порядке (user, затем admin); побеждает первый валидный результат.
// Принадлежность субъекта нужной коллекции проверяется выше по стеку:
// даже при совпадении секретов чужой subject id не найдётся в хранилище роли.
func (m *MakerImpl) VerifyAccessAny(tokenStr string) (*Claims, error) {
	var firstErr error
	for _, name := range m.order {
		claims, err := m.VerifyAccess(tokenStr, name)
		if err == nil {
			return claims, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func parse(op, tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	return claims, nil
}
