// Package cookies устанавливает и очищает сессионные cookie с токенами.
// В продакшене cookie уходят с Secure и SameSite=None: фронтенд живёт
// на другом домене; локально используется Lax без Secure.
package cookies

import (
	"net/http"
	"time"
)

// Имена сессионных cookie.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

func attributes(env string) (secure bool, sameSite http.SameSite) {
	if env == "prod" {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteLaxMode
}

// Set устанавливает httpOnly cookie с временем жизни maxAge.
func Set(w http.ResponseWriter, env, name, value string, maxAge time.Duration) {
	secure, sameSite := attributes(env)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// SetPair устанавливает обе сессионные cookie.
func SetPair(w http.ResponseWriter, env, access, refresh string, accessTTL, refreshTTL time.Duration) {
	Set(w, env, AccessToken, access, accessTTL)
	Set(w, env, RefreshToken, refresh, refreshTTL)
}

// Clear удаляет сессионные cookie.
func Clear(w http.ResponseWriter, env string) {
	secure, sameSite := attributes(env)
	for _, name := range []string{AccessToken, RefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: sameSite,
		})
	}
}
