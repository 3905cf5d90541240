package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
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

func doRequest(t *testing.T, register RegisterFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := New(makeLogger(), register)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	handler(rec, req)
	return rec
}

func TestRegister_Success(t *testing.T) {
	register := func(_ context.Context, fullname, email, phone, password string) (string, error) {
		assert.Equal(t, "Anita Sharma", fullname)
		assert.Equal(t, "anita@example.com", email)
		return "acc-1", nil
	}

	rec := doRequest(t, register, `{
		"fullname": "Anita Sharma",
		"email": "anita@example.com",
		"phoneNumber": "9876543210",
		"password": "secret123"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "acc-1", data["id"])
}

func TestRegister_BadJSON(t *testing.T) {
	rec := doRequest(t, nil, `{"fullname": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to decode request", resp.Error)
}

func TestRegister_ValidationFailure(t *testing.T) {
	rec := doRequest(t, nil, `{
		"fullname": "A",
		"email": "not-an-email",
		"phoneNumber": "123",
		"password": "short"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func TestRegister_Conflict(t *testing.T) {
	register := func(_ context.Context, _, _, _, _ string) (string, error) {
		return "", storage.ErrAlreadyExists
	}

	rec := doRequest(t, register, `{
		"fullname": "Anita Sharma",
		"email": "anita@example.com",
		"phoneNumber": "9876543210",
		"password": "secret123"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email or phone number already in use", resp.Error)
}

func TestRegister_InternalError(t *testing.T) {
	register := func(_ context.Context, _, _, _, _ string) (string, error) {
		return "", errors.New("db down")
	}

	rec := doRequest(t, register, `{
		"fullname": "Anita Sharma",
		"email": "anita@example.com",
		"phoneNumber": "9876543210",
		"password": "secret123"
	}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
