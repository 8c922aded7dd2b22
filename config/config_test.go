package config

import (
	"testing"
	"time"

	"github.com/mitoneko/neko-todo/models"
)

// setRequired fills the keys without which Load refuses to start, and
// blanks the optional ones so each test controls them explicitly.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(envDBHost, "localhost")
	t.Setenv(envDBUser, "neko")
	t.Setenv(envDBPass, "secret")
	t.Setenv(envSessionTTL, "")
	t.Setenv(envSortOrder, "")
	t.Setenv(envIncomplete, "")
	t.Setenv(envPort, "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.DefaultSortOrder != models.EndAsc {
		t.Errorf("DefaultSortOrder = %v, want EndAsc", cfg.DefaultSortOrder)
	}
	if !cfg.DefaultOnlyIncomplete {
		t.Error("DefaultOnlyIncomplete = false, want true")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv(envSessionTTL, "90m")
	t.Setenv(envSortOrder, "UpdateDesc")
	t.Setenv(envIncomplete, "false")
	t.Setenv(envPort, "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("SessionTTL = %v, want 90m", cfg.SessionTTL)
	}
	if cfg.DefaultSortOrder != models.UpdateDesc {
		t.Errorf("DefaultSortOrder = %v, want UpdateDesc", cfg.DefaultSortOrder)
	}
	if cfg.DefaultOnlyIncomplete {
		t.Error("DefaultOnlyIncomplete = true, want false")
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{envDBHost, envDBUser, envDBPass} {
		setRequired(t)
		t.Setenv(key, "")
		if _, err := Load(); err == nil {
			t.Errorf("Load with blank %s succeeded, want error", key)
		}
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct{ key, val string }{
		{envSessionTTL, "soon"},
		{envSortOrder, "Sideways"},
		{envIncomplete, "maybe"},
	}
	for _, tt := range tests {
		setRequired(t)
		t.Setenv(tt.key, tt.val)
		if _, err := Load(); err == nil {
			t.Errorf("Load with %s=%q succeeded, want error", tt.key, tt.val)
		}
	}
}
