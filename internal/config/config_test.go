package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Gateway.APIKey = "key-123"
	cfg.Gateway.PhoneNumberID = "1098765"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Gateway.BaseURL == "" {
		t.Error("expected a default gateway base URL")
	}
	if cfg.Database != "passbot.db" {
		t.Errorf("expected default database passbot.db, got %q", cfg.Database)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.passbot.yml")

	original := validConfig()
	original.Server.Port = 9090
	original.Gateway.VerifyToken = "hub-secret"
	original.Mail.APIKey = "mail-key"
	original.Mail.FromEmail = "passes@example.org"
	original.Mail.FallbackFromEmail = "passes-alt@example.org"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Gateway.APIKey != original.Gateway.APIKey {
		t.Errorf("gateway api key: got %q, want %q", loaded.Gateway.APIKey, original.Gateway.APIKey)
	}
	if loaded.Gateway.VerifyToken != "hub-secret" {
		t.Errorf("verify token: got %q, want %q", loaded.Gateway.VerifyToken, "hub-secret")
	}
	if loaded.Mail.FromEmail != original.Mail.FromEmail {
		t.Errorf("from email: got %q, want %q", loaded.Mail.FromEmail, original.Mail.FromEmail)
	}
	if loaded.Mail.FallbackFromEmail != original.Mail.FallbackFromEmail {
		t.Errorf("fallback sender: got %q, want %q", loaded.Mail.FallbackFromEmail, original.Mail.FallbackFromEmail)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := validConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("PASSBOT_GATEWAY__API_KEY", "env-key")
	defer os.Unsetenv("PASSBOT_GATEWAY__API_KEY")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Gateway.APIKey != "env-key" {
		t.Errorf("env override failed: got %q, want %q", loaded.Gateway.APIKey, "env-key")
	}
}

func TestValidateValid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}
}

func TestValidateMissingGatewayKey(t *testing.T) {
	cfg := validConfig()
	cfg.Gateway.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing gateway api key")
	}
}

func TestValidateMissingPhoneNumberID(t *testing.T) {
	cfg := validConfig()
	cfg.Gateway.PhoneNumberID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing phone number id")
	}
}

func TestValidateMailRequiresSender(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.APIKey = "mail-key"
	cfg.Mail.FromEmail = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for mail key without sender")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestGatewayConfigured(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GatewayConfigured() {
		t.Error("defaults should not count as configured")
	}
	if !validConfig().GatewayConfigured() {
		t.Error("expected configured gateway")
	}
}
