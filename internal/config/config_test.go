package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_URL", "https://store.example.com/")
	t.Setenv("WEB_API_KEY", "key-123")
	t.Setenv("BLOB_BUCKET", "scenedir")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %q", cfg.Port)
	}
	if cfg.StoreURL != "https://store.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.StoreURL)
	}
	if cfg.WindowMonths != 6 || cfg.ForecastHorizon != 3 || cfg.TopScenes != 5 {
		t.Errorf("Unexpected analytics defaults: %d/%d/%d",
			cfg.WindowMonths, cfg.ForecastHorizon, cfg.TopScenes)
	}
	if cfg.MainBuilding != "Campus" {
		t.Errorf("Expected default main building, got %q", cfg.MainBuilding)
	}
}

func TestLoadRequiredVars(t *testing.T) {
	cases := []struct {
		missing string
	}{
		{"STORE_URL"},
		{"WEB_API_KEY"},
		{"BLOB_BUCKET"},
	}
	for _, tc := range cases {
		t.Run(tc.missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.missing, "")

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error when %s is unset", tc.missing)
			}
			if !strings.Contains(err.Error(), tc.missing) {
				t.Errorf("Expected error to name %s, got %q", tc.missing, err)
			}
		})
	}
}
