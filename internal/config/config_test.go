package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresPlatformAPIKey(t *testing.T) {
	c := Config{
		App:      AppConfig{Env: "production", Port: 8080},
		Platform: PlatformConfig{BaseURL: "https://platform.internal"},
		Auth:     AuthConfig{JWTSecret: "secret", JWTIssuer: "console", JWTAudience: "operators"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without PLATFORM_API_KEY")
	}
}

func TestValidate_RejectsRelativePlatformURL(t *testing.T) {
	c := Config{
		App:      AppConfig{Env: "local", Port: 8080},
		Platform: PlatformConfig{BaseURL: "platform.internal/api"},
		Auth:     AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for relative PLATFORM_BASE_URL")
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	c := Config{
		App:      AppConfig{Env: "local", Port: 8080},
		Platform: PlatformConfig{BaseURL: "http://localhost:9000"},
		Auth:     AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Platform.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default request timeout, got %v", c.Platform.RequestTimeout)
	}
	if c.Auth.AccessTokenTTL != 8*time.Hour {
		t.Fatalf("expected default access ttl, got %v", c.Auth.AccessTokenTTL)
	}
}
