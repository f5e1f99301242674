package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/outreach")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected default env to be development")
	}
	if cfg.AuthTimeout() != 10*time.Second {
		t.Errorf("expected 10s auth timeout, got %s", cfg.AuthTimeout())
	}
	if cfg.BlobDriver != "memory" {
		t.Errorf("expected default blob driver memory, got %s", cfg.BlobDriver)
	}
	if cfg.DefaultCountryCode != "+91" {
		t.Errorf("expected default country code +91, got %s", cfg.DefaultCountryCode)
	}
}

func TestValidate_BlobDriver(t *testing.T) {
	cfg := &Config{Env: "development", BlobDriver: "ftp"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown blob driver")
	}

	cfg = &Config{Env: "development", BlobDriver: "s3"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for s3 driver without bucket")
	}

	cfg = &Config{Env: "development", BlobDriver: "s3", BlobS3Bucket: "consents"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Production(t *testing.T) {
	cfg := &Config{Env: "production", BlobDriver: "memory"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected production config without auth service to fail")
	}

	cfg = &Config{
		Env:            "production",
		BlobDriver:     "s3",
		BlobS3Bucket:   "consents",
		AuthServiceURL: "https://auth.example.com/functions/v1/imacx-login",
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
