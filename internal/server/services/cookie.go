package services

import (
	"net/http"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
)

// RefreshCookie builds the cookie carrying the refresh token. The cookie is
// HTTP-only, pinned to the renewal path, same-site strict, and lives as long
// as the token itself. The builder is pure; the transport layer decides when
// to attach the descriptor to a response.
func RefreshCookie(token string, expiresAt time.Time, secure bool) *http.Cookie {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	return &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    token,
		Path:     common.RefreshTokenCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredRefreshCookie builds the descriptor that clears the refresh cookie
// on sign-out.
func ExpiredRefreshCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    "",
		Path:     common.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
