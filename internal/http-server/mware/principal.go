// Package mware содержит middleware для HTTP-сервера: распознавание
// принципала по токену, ролевой шлюз, CORS и ограничение частоты запросов.
package mware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	jwtlib "github.com/ayushsetu/credential-registry/internal/lib/jwt"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/models"
)

type ctxKey string

// PrincipalKey ключ контекста, под которым резолвер сохраняет принципала.
const PrincipalKey ctxKey = "principal"

// AccessTokenCookie имя cookie с access-токеном. Cookie имеет приоритет
// над заголовком Authorization.
const AccessTokenCookie = "accessToken"

// Principal аутентифицированный субъект запроса. Заполнено ровно одно
// из полей User или Admin, в соответствии с ролью.
type Principal struct {
	ID    string
	Role  string
	User  *models.User
	Admin *models.Admin
}

// UserGetter возвращает пользователя по ID.
type UserGetter interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// AdminGetter возвращает администратора по ID.
type AdminGetter interface {
	GetAdmin(ctx context.Context, adminID string) (*models.Admin, error)
}

// PrincipalFromContext извлекает принципала, положенного резолвером.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*Principal)
	return p, ok
}

// TokenFromRequest извлекает access-токен: сначала cookie, затем
// заголовок Authorization с префиксом Bearer.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// ResolvePrincipal возвращает middleware, распознающее принципала запроса.
// Логика работы:
//  1. Извлекает токен из cookie или заголовка Authorization.
//  2. Проверяет токен каждым доменом подписи; побеждает первый валидный.
//  3. По роли из токена ищет учётную запись в соответствующем хранилище.
//  4. Кладёт принципала в контекст запроса и передаёт управление дальше.
//
// Совпадение подписи с чужим доменом не даёт доступа: subject id из чужого
// домена не найдётся в хранилище роли, и запрос завершится 401.
func ResolvePrincipal(maker jwtlib.Maker, users UserGetter, admins AdminGetter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.ResolvePrincipal"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := TokenFromRequest(r)
			if tokenStr == "" {
				log.Error("no token provided")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized: no token provided"))
				return
			}

			claims, err := maker.VerifyAccessAny(tokenStr)
			if err != nil {
				if errors.Is(err, jwtlib.ErrTokenExpired) {
					log.Error("token expired", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("token expired, please login again"))
					return
				}
				log.Error("invalid token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			principal := &Principal{ID: claims.SubjectID(), Role: claims.Role}
			switch claims.Role {
			case models.RoleUser:
				user, err := users.GetUser(r.Context(), claims.SubjectID())
				if err != nil {
					log.Error("account not found", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("account not found"))
					return
				}
				principal.User = user
			case models.RoleAdmin:
				admin, err := admins.GetAdmin(r.Context(), claims.SubjectID())
				if err != nil {
					log.Error("account not found", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("account not found"))
					return
				}
				principal.Admin = admin
			default:
				log.Error("invalid role in token", slog.String("role", claims.Role))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid role in token"))
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
