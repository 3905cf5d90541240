// Package me обработчик карточки текущего принципала.
package me

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/ayushsetu/credential-registry/internal/http-server/mware"
	"github.com/ayushsetu/credential-registry/internal/http-server/response"
)

// New
// @Summary Текущая учётная запись
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Учётная запись без секретных полей"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Router /me [get]
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := mware.PrincipalFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized: no token provided"))
			return
		}

		if principal.Admin != nil {
			render.JSON(w, r, response.StatusOKWithData(principal.Admin.Sanitized()))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(principal.User.Sanitized()))
	}
}
