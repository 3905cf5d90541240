package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("title", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxMemory))
	return req
}

func TestSaveTemp(t *testing.T) {
	req := multipartRequest(t, "personalPhoto", "photo.jpg", "jpeg-bytes")

	path, err := SaveTemp(req, "personalPhoto")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	defer os.Remove(path)

	assert.Equal(t, ".jpg", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestSaveTemp_MissingFileIsNotAnError(t *testing.T) {
	req := multipartRequest(t, "", "", "")

	path, err := SaveTemp(req, "personalPhoto")
	require.NoError(t, err)
	assert.Empty(t, path)
}
