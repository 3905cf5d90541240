package adminops

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

type stubStore struct {
	users         []*models.User
	user          *models.User
	medical       *models.MedicalProfessional
	stats         *storage.UserStats
	statsCalls    int
	gotLimit      int
	gotOffset     int
	deletedUserID string
}

func (s *stubStore) ListUsers(_ context.Context, limit, offset int) ([]*models.User, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.users, nil
}

func (s *stubStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	if s.user == nil {
		return nil, storage.ErrNotFound
	}
	return s.user, nil
}

func (s *stubStore) DeleteUser(_ context.Context, userID string) error {
	s.deletedUserID = userID
	return nil
}

func (s *stubStore) CountUserStats(_ context.Context) (*storage.UserStats, error) {
	s.statsCalls++
	return s.stats, nil
}

func (s *stubStore) GetMedicalProfessionalByUserID(_ context.Context, _ string) (*models.MedicalProfessional, error) {
	if s.medical == nil {
		return nil, storage.ErrNotFound
	}
	return s.medical, nil
}

func (s *stubStore) GetNonMedicalProfessionalByUserID(_ context.Context, _ string) (*models.NonMedicalProfessional, error) {
	return nil, storage.ErrNotFound
}

type stubCache struct {
	data        map[string]any
	getErr      error
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]any)}
}

func (c *stubCache) Get(key string, result any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(result.(*storage.UserStats)) = *(v.(*storage.UserStats))
	return true, nil
}

func (c *stubCache) Set(key string, value any, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *stubCache) Invalidate(key string) error {
	c.invalidated = append(c.invalidated, key)
	delete(c.data, key)
	return nil
}

func TestStats_CachesResult(t *testing.T) {
	store := &stubStore{stats: &storage.UserStats{TotalUsers: 5, MedicalProfiles: 2}}
	cache := newStubCache()
	svc := New(store, cache, makeLogger())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalUsers)
	assert.Equal(t, 1, store.statsCalls)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, second.TotalUsers)
	assert.Equal(t, 1, store.statsCalls, "second read should come from cache")
}

func TestStats_CacheErrorFallsBackToStore(t *testing.T) {
	store := &stubStore{stats: &storage.UserStats{TotalUsers: 3}}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")
	svc := New(store, cache, makeLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, store.statsCalls)
}

func TestStats_NoCache(t *testing.T) {
	store := &stubStore{stats: &storage.UserStats{TotalUsers: 1}}
	svc := New(store, nil, makeLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
}

func TestListUsers_ClampsLimitAndSanitizes(t *testing.T) {
	store := &stubStore{users: []*models.User{
		{ID: "user-1", PasswordHash: "hash", RefreshToken: "token"},
	}}
	svc := New(store, nil, makeLogger())

	users, err := svc.ListUsers(context.Background(), 500, -3)
	require.NoError(t, err)
	assert.Equal(t, 20, store.gotLimit)
	assert.Equal(t, 0, store.gotOffset)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
	assert.Empty(t, users[0].RefreshToken)
}

func TestUserDetail_MedicalProfileAttached(t *testing.T) {
	store := &stubStore{
		user:    &models.User{ID: "user-1", RegisteredAs: models.RegisteredAsMedical, PasswordHash: "hash"},
		medical: &models.MedicalProfessional{ID: "prof-1", UserID: "user-1"},
	}
	svc := New(store, nil, makeLogger())

	detail, err := svc.UserDetail(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, detail.User.PasswordHash)
	require.NotNil(t, detail.Medical)
	assert.Equal(t, "prof-1", detail.Medical.ID)
	assert.Nil(t, detail.NonMedical)
}

func TestUserDetail_MissingProfileNotFatal(t *testing.T) {
	store := &stubStore{
		user: &models.User{ID: "user-1", RegisteredAs: models.RegisteredAsMedical},
	}
	svc := New(store, nil, makeLogger())

	detail, err := svc.UserDetail(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, detail.Medical)
}

func TestUserDetail_NotFound(t *testing.T) {
	svc := New(&stubStore{}, nil, makeLogger())

	_, err := svc.UserDetail(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteUser_InvalidatesStatsCache(t *testing.T) {
	store := &stubStore{}
	cache := newStubCache()
	svc := New(store, cache, makeLogger())

	require.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
	assert.Equal(t, "user-1", store.deletedUserID)
	assert.Equal(t, []string{statsCacheKey}, cache.invalidated)
}
