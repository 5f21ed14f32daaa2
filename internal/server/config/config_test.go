package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.EndpointAddr)
	}
	if cfg.AccessTokenValidityDuration != 30*time.Minute {
		t.Fatalf("unexpected default access TTL: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 7*24*time.Hour {
		t.Fatalf("unexpected default refresh TTL: %v", cfg.RefreshTokenValidityDuration)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("redis disabled by default, got %q", cfg.RedisAddr)
	}
	if cfg.CookieSecure {
		t.Fatalf("cookie secure off by default")
	}
}

func TestLoadConfig_Flags(t *testing.T) {
	resetArgs(t, "-a", ":9090", "-d", "postgres://db", "-x", "localhost:6379", "-t", "5", "-r", "60", "-k=true")

	cfg := LoadConfig()

	if cfg.EndpointAddr != ":9090" {
		t.Fatalf("addr flag not applied: %q", cfg.EndpointAddr)
	}
	if cfg.DatabaseDSN != "postgres://db" {
		t.Fatalf("dsn flag not applied: %q", cfg.DatabaseDSN)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis flag not applied: %q", cfg.RedisAddr)
	}
	if cfg.AccessTokenValidityDuration != 5*time.Minute {
		t.Fatalf("access TTL flag not applied: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 60*time.Minute {
		t.Fatalf("refresh TTL flag not applied: %v", cfg.RefreshTokenValidityDuration)
	}
	if !cfg.CookieSecure {
		t.Fatalf("cookie secure flag not applied")
	}
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	content := `{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://json-db",
		"redis_addr": "redis:6379",
		"secret_key": "json-secret",
		"access_token_validity_duration": "15m",
		"refresh_token_validity_duration": "336h",
		"cookie_secure": true,
		"portal_base_url": "https://portal.example.ac.kr",
		"portal_timeout": "5s"
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	resetArgs(t, "-c", path)

	cfg := LoadConfig()

	if cfg.EndpointAddr != ":7070" {
		t.Fatalf("json addr not applied: %q", cfg.EndpointAddr)
	}
	if cfg.SecretKey != "json-secret" {
		t.Fatalf("json secret not applied: %q", cfg.SecretKey)
	}
	if cfg.AccessTokenValidityDuration != 15*time.Minute {
		t.Fatalf("json access TTL not applied: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 336*time.Hour {
		t.Fatalf("json refresh TTL not applied: %v", cfg.RefreshTokenValidityDuration)
	}
	if !cfg.CookieSecure {
		t.Fatalf("json cookie_secure not applied")
	}
	if cfg.PortalTimeout != 5*time.Second {
		t.Fatalf("json portal_timeout not applied: %v", cfg.PortalTimeout)
	}
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	if err := os.WriteFile(path, []byte(`{"endpoint_addr": ":7070"}`), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	resetArgs(t, "-c", path, "-a", ":9999")

	cfg := LoadConfig()
	if cfg.EndpointAddr != ":9999" {
		t.Fatalf("flags must win over JSON, got %q", cfg.EndpointAddr)
	}
}
