package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadFromEnv(t *testing.T) {
	// Save and restore environment
	envVars := []string{
		"CONFIG_FILE", "ENVIRONMENT", "PORT", "LOG_LEVEL",
		"SHOP_API_ENDPOINT", "SESSION_SECRET", "SHOP_CHANNEL_TOKEN", "SITE_NAME",
	}
	saved := make(map[string]string)
	for _, k := range envVars {
		saved[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range saved {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	os.Unsetenv("CONFIG_FILE")
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("PORT", "9090")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SHOP_API_ENDPOINT", "https://shop.example.com/shop-api")
	os.Setenv("SESSION_SECRET", testSecret)
	os.Setenv("SHOP_CHANNEL_TOKEN", "channel-1")
	os.Setenv("SITE_NAME", "Example Shop")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.Shop.APIEndpoint != "https://shop.example.com/shop-api" {
		t.Errorf("APIEndpoint = %s", cfg.Shop.APIEndpoint)
	}
	if cfg.Shop.ChannelToken != "channel-1" {
		t.Errorf("ChannelToken = %s, want channel-1", cfg.Shop.ChannelToken)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true in development")
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	saved := map[string]string{
		"CONFIG_FILE":       os.Getenv("CONFIG_FILE"),
		"ENVIRONMENT":       os.Getenv("ENVIRONMENT"),
		"SHOP_API_ENDPOINT": os.Getenv("SHOP_API_ENDPOINT"),
		"SESSION_SECRET":    os.Getenv("SESSION_SECRET"),
	}
	defer func() {
		for k, v := range saved {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name    string
		setup   func()
		wantErr string
	}{
		{
			name: "missing api_endpoint",
			setup: func() {
				os.Unsetenv("SHOP_API_ENDPOINT")
				os.Setenv("SESSION_SECRET", testSecret)
			},
			wantErr: "api_endpoint is required",
		},
		{
			name: "short session_secret",
			setup: func() {
				os.Setenv("SHOP_API_ENDPOINT", "https://shop.example.com/shop-api")
				os.Setenv("SESSION_SECRET", "too-short")
			},
			wantErr: "session_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("CONFIG_FILE")
			os.Setenv("ENVIRONMENT", "development")
			tt.setup()

			_, err := Load(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"port": "7070",
		"environment": "development",
		"shop": {
			"api_endpoint": "https://shop.example.com/shop-api",
			"session_secret": "` + testSecret + `",
			"site_name": "Example Shop"
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	saved := os.Getenv("CONFIG_FILE")
	defer os.Setenv("CONFIG_FILE", saved)
	os.Setenv("CONFIG_FILE", path)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %s, want 7070", cfg.Port)
	}
	if cfg.Shop.SiteName != "Example Shop" {
		t.Errorf("SiteName = %s", cfg.Shop.SiteName)
	}
}
