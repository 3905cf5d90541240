// Package upload принимает файлы из multipart-форм во временный каталог.
// Дальнейшую судьбу файла решает медиа-хранилище: после отправки провайдеру
// временный файл удаляется.
package upload

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// MaxMemory порог буферизации multipart-форм в памяти.
const MaxMemory = 10 << 20

// SaveTemp сохраняет файл из поля формы во временный каталог и возвращает
// путь. Отсутствие файла в форме — не ошибка: возвращается пустой путь.
func SaveTemp(r *http.Request, field string) (string, error) {
	const op = "upload.SaveTemp"

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = file.Close()
	}()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return tmp.Name(), nil
}
