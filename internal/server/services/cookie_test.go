package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
)

func TestRefreshCookie_Attributes(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	c := RefreshCookie("token-value", expiresAt, true)

	if c.Name != common.RefreshTokenCookieName {
		t.Errorf("Name = %q, want %q", c.Name, common.RefreshTokenCookieName)
	}
	if c.Value != "token-value" {
		t.Errorf("Value = %q", c.Value)
	}
	if c.Path != common.RefreshTokenCookiePath {
		t.Errorf("Path = %q, want %q", c.Path, common.RefreshTokenCookiePath)
	}
	if !c.HttpOnly {
		t.Errorf("cookie must be HTTP-only")
	}
	if !c.Secure {
		t.Errorf("Secure flag not carried through")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want strict", c.SameSite)
	}
	if c.MaxAge < 3595 || c.MaxAge > 3600 {
		t.Errorf("MaxAge = %d, want about 3600", c.MaxAge)
	}
}

func TestRefreshCookie_InsecureChannel(t *testing.T) {
	c := RefreshCookie("token-value", time.Now().Add(time.Hour), false)
	if c.Secure {
		t.Errorf("Secure must follow configuration")
	}
}

func TestRefreshCookie_PastExpiryClampsMaxAge(t *testing.T) {
	c := RefreshCookie("token-value", time.Now().Add(-time.Minute), false)
	if c.MaxAge != 0 {
		t.Errorf("MaxAge = %d, want 0 for an already expired token", c.MaxAge)
	}
}

func TestExpiredRefreshCookie(t *testing.T) {
	c := ExpiredRefreshCookie(true)

	if c.Name != common.RefreshTokenCookieName || c.Value != "" {
		t.Errorf("clearing cookie must be empty-valued under the same name: %+v", c)
	}
	if c.Path != common.RefreshTokenCookiePath {
		t.Errorf("Path = %q, want %q", c.Path, common.RefreshTokenCookiePath)
	}
	if c.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", c.MaxAge)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("unexpected attributes: %+v", c)
	}
}
