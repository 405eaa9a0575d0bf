package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ImageModel == "" {
		t.Error("ImageModel should have a default")
	}
	if cfg.ImageSize != "1024x1024" {
		t.Errorf("ImageSize = %q, want %q", cfg.ImageSize, "1024x1024")
	}
	if cfg.MaxUploadBytes != 8<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 8<<20)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Missing file falls back to defaults
	if cfg.ImageModel != DefaultConfig().ImageModel {
		t.Errorf("ImageModel = %q, want default %q", cfg.ImageModel, DefaultConfig().ImageModel)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	tmpDir := t.TempDir()

	content := `{"image_model": "custom-model", "disabled_tools": ["studio_reset"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ImageModel != "custom-model" {
		t.Errorf("ImageModel = %q, want %q", cfg.ImageModel, "custom-model")
	}
	// Unset fields keep defaults
	if cfg.ImageSize != "1024x1024" {
		t.Errorf("ImageSize = %q, want default", cfg.ImageSize)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "studio_reset" {
		t.Errorf("DisabledTools = %v, want [studio_reset]", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		ImageModel:     "base-model",
		ImageSize:      "512x512",
		MaxUploadBytes: 100,
		DisabledTools:  []string{"a"},
	}
	overlay := &Config{
		ImageModel:    "overlay-model",
		DisabledTools: []string{"a", "b", " "},
	}

	merged := Merge(base, overlay)

	if merged.ImageModel != "overlay-model" {
		t.Errorf("ImageModel = %q, want %q", merged.ImageModel, "overlay-model")
	}
	if merged.ImageSize != "512x512" {
		t.Errorf("ImageSize = %q, want base value", merged.ImageSize)
	}
	if merged.MaxUploadBytes != 100 {
		t.Errorf("MaxUploadBytes = %d, want 100", merged.MaxUploadBytes)
	}
	if len(merged.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want deduplicated [a b]", merged.DisabledTools)
	}
}
