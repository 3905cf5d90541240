// Package mediastore клиент внешнего медиа-хранилища: подписанные загрузки
// изображений и документов и удаление объектов по их публичным идентификаторам.
package mediastore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент медиа-хранилища. Пустой baseURL заменяется
// адресом провайдера по умолчанию.
func NewClient(cloudName, apiKey, apiSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com/v1_1"
	}
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		apiURL:     strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// sign подписывает параметры запроса: отсортированные пары key=value
// склеиваются через &, к ним добавляется секрет, от строки берётся SHA-1.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// Upload загружает содержимое reader в указанную папку хранилища.
func (c *Client) Upload(ctx context.Context, reader io.Reader, filename, folder string) (*UploadResult, error) {
	const op = "mediastore.Upload"

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"timestamp": timestamp,
		"folder":    folder,
	}
	signature := c.sign(params)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer func() {
			_ = pw.CloseWithError(mw.Close())
		}()
		for k, v := range params {
			if err := mw.WriteField(k, v); err != nil {
				_ = pw.CloseWithError(err)
				return
			}
		}
		if err := mw.WriteField("api_key", c.apiKey); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("signature", signature); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, reader); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
	}()

	url := fmt.Sprintf("%s/%s/auto/upload", c.apiURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UploadFile загружает локальный файл и удаляет его после отправки,
// независимо от исхода: временные файлы форм не должны накапливаться.
func (c *Client) UploadFile(ctx context.Context, localPath, folder string) (*UploadResult, error) {
	const op = "mediastore.UploadFile"

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(localPath)
	}()

	return c.Upload(ctx, f, filepath.Base(localPath), folder)
}

// Destroy удаляет объект из хранилища по публичному идентификатору.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	const op = "mediastore.Destroy"

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}
	signature := c.sign(params)

	form := fmt.Sprintf("public_id=%s&timestamp=%s&api_key=%s&signature=%s",
		publicID, timestamp, c.apiKey, signature)
	url := fmt.Sprintf("%s/%s/image/destroy", c.apiURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var result destroyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return errors.New(op + ": destroy failed: " + result.Result)
	}
	return nil
}
