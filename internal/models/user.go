// Package models содержит доменные структуры реестра: учётные записи
// пользователей и администраторов, анкеты профессиональной регистрации,
// объявления, галерею и загрузки исследований.
package models

import "time"

// Значения тега RegisteredAs пользователя.
const (
	RegisteredAsNone       = "none"
	RegisteredAsMedical    = "medical_prof"
	RegisteredAsNonMedical = "non_medical_prof"
)

// Роли принципалов. Множество закрытое: любая другая роль в токене отклоняется.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	ID                string     `json:"id"`
	Fullname          string     `json:"fullname"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phoneNumber"`
	PasswordHash      string     `json:"-"`
	Role              string     `json:"role"`
	RegisteredAs      string     `json:"registeredAs"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty"`
	IsEmailVerified   bool       `json:"isEmailVerified"`
	RefreshToken      string     `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// Sanitized возвращает копию без секретных полей: хэш пароля и refresh-токен
// не сериализуются, но копия дополнительно гарантирует, что они не утекут
// через повторное присваивание.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}
