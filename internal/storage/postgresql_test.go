package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_Nil(t *testing.T) {
	assert.NoError(t, translate("storage.Test", nil))
}

func TestTranslate_NoRows(t *testing.T) {
	err := translate("storage.Test", sql.ErrNoRows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "storage.Test")
}

func TestTranslate_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	err := translate("storage.Test", fmt.Errorf("insert: %w", pgErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestTranslate_OtherPgErrorPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	err := translate("storage.Test", pgErr)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestTranslate_WrapsUnknownError(t *testing.T) {
	cause := errors.New("connection reset")
	err := translate("storage.Test", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
