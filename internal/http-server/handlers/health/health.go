// Package health обработчик проверки живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/response"
)

// New
// @Summary Проверка живости
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	}
}
