package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsetu/credential-registry/internal/config"
)

func testMaker() *MakerImpl {
	return NewMaker(config.Tokens{
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

func TestIssueAndVerifyAccess(t *testing.T) {
	maker := testMaker()

	token, err := maker.IssueAccess("user-1", "user", DomainUser)
	require.NoError(t, err)

	claims, err := maker.VerifyAccess(token, DomainUser)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyAccess_WrongDomainFails(t *testing.T) {
	maker := testMaker()

	token, err := maker.IssueAccess("user-1", "user", DomainUser)
	require.NoError(t, err)

	_, err = maker.VerifyAccess(token, DomainAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestVerifyAccessAny_ResolvesBothDomains(t *testing.T) {
	maker := testMaker()

	userToken, err := maker.IssueAccess("user-1", "user", DomainUser)
	require.NoError(t, err)
	adminToken, err := maker.IssueAccess("admin-1", "admin", DomainAdmin)
	require.NoError(t, err)

	claims, err := maker.VerifyAccessAny(userToken)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)

	claims, err = maker.VerifyAccessAny(adminToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyAccessAny_InvalidToken(t *testing.T) {
	maker := testMaker()

	_, err := maker.VerifyAccessAny("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestRefreshNotValidAsAccess(t *testing.T) {
	maker := testMaker()

	refresh, err := maker.IssueRefresh("user-1", DomainUser)
	require.NoError(t, err)

	_, err = maker.VerifyAccess(refresh, DomainUser)
	require.Error(t, err)

	claims, err := maker.VerifyRefresh(refresh, DomainUser)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Empty(t, claims.Role)
}

func TestIssueRefresh_TokensAreDistinct(t *testing.T) {
	maker := testMaker()

	first, err := maker.IssueRefresh("user-1", DomainUser)
	require.NoError(t, err)
	second, err := maker.IssueRefresh("user-1", DomainUser)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	claims, err := maker.VerifyRefresh(second, DomainUser)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyAccess_Expired(t *testing.T) {
	maker := NewMaker(config.Tokens{
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

	token, err := maker.IssueAccess("user-1", "user", DomainUser)
	require.NoError(t, err)

	_, err = maker.VerifyAccess(token, DomainUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestUnknownDomain(t *testing.T) {
	maker := testMaker()

	_, err := maker.IssueAccess("user-1", "user", "ghost")
	require.Error(t, err)

	_, err = maker.VerifyAccess("whatever", "ghost")
	require.Error(t, err)
}
