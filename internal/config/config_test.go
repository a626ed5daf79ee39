package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Export.Theme != "" {
		t.Errorf("Export.Theme = %q, want empty", cfg.Export.Theme)
	}
	if cfg.Export.BatchSize != 0 {
		t.Errorf("Export.BatchSize = %d, want 0", cfg.Export.BatchSize)
	}
	if cfg.Export.Markdown {
		t.Error("Export.Markdown = true, want false")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		export  ExportConfig
		wantErr string
	}{
		{
			name:   "empty config is valid",
			export: ExportConfig{},
		},
		{
			name:   "full valid config",
			export: ExportConfig{Theme: "dark", ImageQuality: "high", BatchSize: 25, Markdown: true},
		},
		{
			name:   "theme is case-insensitive",
			export: ExportConfig{Theme: "Dark"},
		},
		{
			name:    "invalid theme",
			export:  ExportConfig{Theme: "sepia"},
			wantErr: "export.theme",
		},
		{
			name:    "invalid image quality",
			export:  ExportConfig{ImageQuality: "ultra"},
			wantErr: "export.imageQuality",
		},
		{
			name:    "batch size too small",
			export:  ExportConfig{BatchSize: -1},
			wantErr: "export.batchSize",
		},
		{
			name:    "batch size too large",
			export:  ExportConfig{BatchSize: 101},
			wantErr: "export.batchSize",
		},
		{
			name:   "batch size at upper bound",
			export: ExportConfig{BatchSize: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Export: tt.export}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns error", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("valid file loads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.yaml")
		content := "export:\n  theme: dark\n  imageQuality: low\n  batchSize: 5\n  markdown: true\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Export.Theme != "dark" {
			t.Errorf("Theme = %q, want dark", cfg.Export.Theme)
		}
		if cfg.Export.ImageQuality != "low" {
			t.Errorf("ImageQuality = %q, want low", cfg.Export.ImageQuality)
		}
		if cfg.Export.BatchSize != 5 {
			t.Errorf("BatchSize = %d, want 5", cfg.Export.BatchSize)
		}
		if !cfg.Export.Markdown {
			t.Error("Markdown = false, want true")
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("export:\n  them: dark\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(path, []byte("export:\n  theme: sepia\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected validation error, got nil")
		}
	})
}
