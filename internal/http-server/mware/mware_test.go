package mware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsetu/credential-registry/internal/config"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
	jwtlib "github.com/ayushsetu/credential-registry/internal/lib/jwt"
	"github.com/ayushsetu/credential-registry/internal/models"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

type stubUsers struct {
	user *models.User
	err  error
}

func (s *stubUsers) GetUser(_ context.Context, _ string) (*models.User, error) {
	return s.user, s.err
}

type stubAdmins struct {
	admin *models.Admin
	err   error
}

func (s *stubAdmins) GetAdmin(_ context.Context, _ string) (*models.Admin, error) {
	return s.admin, s.err
}

func testJWTMaker() *jwtlib.MakerImpl {
	return jwtlib.NewMaker(config.Tokens{
		User: config.TokenDomain{
			AccessSecret:  "user-access-secret",
			RefreshSecret: "user-refresh-secret",
			AccessTTL:     time.Hour,
			RefreshTTL:    24 * time.Hour,
		},
		Admin: config.TokenDomain{
			AccessSecret:  "admin-access-secret",
			RefreshSecret: "admin-refresh-secret",
			AccessTTL:     time.Hour,
			RefreshTTL:    24 * time.Hour,
		},
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func principalCapture(dst **Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			*dst = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestResolvePrincipal_NoToken(t *testing.T) {
	mw := ResolvePrincipal(testJWTMaker(), &stubUsers{}, &stubAdmins{}, makeLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	mw(principalCapture(new(*Principal))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized: no token provided", decodeError(t, rec).Error)
}

func TestResolvePrincipal_CookieToken(t *testing.T) {
	maker := testJWTMaker()
	user := &models.User{ID: "user-1", Role: models.RoleUser, Email: "u@example.com"}
	mw := ResolvePrincipal(maker, &stubUsers{user: user}, &stubAdmins{}, makeLogger())

	token, err := maker.IssueAccess("user-1", models.RoleUser, jwtlib.DomainUser)
	require.NoError(t, err)

	var got *Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	mw(principalCapture(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, models.RoleUser, got.Role)
	require.NotNil(t, got.User)
	assert.Nil(t, got.Admin)
}

func TestResolvePrincipal_BearerFallback(t *testing.T) {
	maker := testJWTMaker()
	admin := &models.Admin{ID: "admin-1", Role: models.RoleAdmin}
	mw := ResolvePrincipal(maker, &stubUsers{}, &stubAdmins{admin: admin}, makeLogger())

	token, err := maker.IssueAccess("admin-1", models.RoleAdmin, jwtlib.DomainAdmin)
	require.NoError(t, err)

	var got *Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mw(principalCapture(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleAdmin, got.Role)
	require.NotNil(t, got.Admin)
}

func TestResolvePrincipal_CookieWinsOverHeader(t *testing.T) {
	maker := testJWTMaker()
	user := &models.User{ID: "user-1", Role: models.RoleUser}
	mw := ResolvePrincipal(maker, &stubUsers{user: user}, &stubAdmins{}, makeLogger())

	cookieToken, err := maker.IssueAccess("user-1", models.RoleUser, jwtlib.DomainUser)
	require.NoError(t, err)

	var got *Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer garbage-token")
	mw(principalCapture(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
}

func TestResolvePrincipal_ExpiredToken(t *testing.T) {
	expired := jwtlib.NewMaker(config.Tokens{
		User: config.TokenDomain{
			AccessSecret:  "user-access-secret",
			RefreshSecret: "user-refresh-secret",
			AccessTTL:     -time.Minute,
			RefreshTTL:    24 * time.Hour,
		},
		Admin: config.TokenDomain{
			AccessSecret:  "admin-access-secret",
			RefreshSecret: "admin-refresh-secret",
			AccessTTL:     time.Hour,
			RefreshTTL:    24 * time.Hour,
		},
	})
	token, err := expired.IssueAccess("user-1", models.RoleUser, jwtlib.DomainUser)
	require.NoError(t, err)

	mw := ResolvePrincipal(expired, &stubUsers{}, &stubAdmins{}, makeLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mw(principalCapture(new(*Principal))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired, please login again", decodeError(t, rec).Error)
}

func TestResolvePrincipal_InvalidToken(t *testing.T) {
	mw := ResolvePrincipal(testJWTMaker(), &stubUsers{}, &stubAdmins{}, makeLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	mw(principalCapture(new(*Principal))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeError(t, rec).Error)
}

func TestResolvePrincipal_InvalidRole(t *testing.T) {
	maker := testJWTMaker()
	mw := ResolvePrincipal(maker, &stubUsers{}, &stubAdmins{}, makeLogger())

	token, err := maker.IssueAccess("user-1", "superuser", jwtlib.DomainUser)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mw(principalCapture(new(*Principal))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid role in token", decodeError(t, rec).Error)
}

func TestResolvePrincipal_AccountNotFound(t *testing.T) {
	maker := testJWTMaker()
	mw := ResolvePrincipal(maker, &stubUsers{err: errors.New("not found")}, &stubAdmins{}, makeLogger())

	token, err := maker.IssueAccess("ghost", models.RoleUser, jwtlib.DomainUser)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mw(principalCapture(new(*Principal))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "account not found", decodeError(t, rec).Error)
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	mw := RequireRole(makeLogger(), models.RoleAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized: no token provided", decodeError(t, rec).Error)
}

func TestRequireRole_WrongRole(t *testing.T) {
	mw := RequireRole(makeLogger(), models.RoleAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	ctx := context.WithValue(req.Context(), PrincipalKey, &Principal{ID: "user-1", Role: models.RoleUser})
	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden: insufficient permissions", decodeError(t, rec).Error)
}

func TestRequireRole_AllowedRolePasses(t *testing.T) {
	mw := RequireRole(makeLogger(), models.RoleUser, models.RoleAdmin)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	ctx := context.WithValue(req.Context(), PrincipalKey, &Principal{ID: "admin-1", Role: models.RoleAdmin})
	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
