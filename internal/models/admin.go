package models

import "time"

// Admin представляет учётную запись администратора. В отличие от User
// администратор не имеет состояния профессиональной регистрации.
type Admin struct {
	ID                string     `json:"id"`
	Fullname          string     `json:"fullname"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phoneNumber"`
	PasswordHash      string     `json:"-"`
	Role              string     `json:"role"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty"`
	RefreshToken      string     `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// Sanitized возвращает копию без секретных полей.
func (a Admin) Sanitized() Admin {
	a.PasswordHash = ""
	a.RefreshToken = ""
	return a
}
