package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGenerationConfig(t *testing.T) {
	configContent := `generation:
  provider: groq
  fallback_enabled: false
  fallback_provider: gemini`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Generation.Provider != "groq" {
		t.Errorf("Expected provider to be 'groq', got '%s'", cfg.Generation.Provider)
	}
	if cfg.Generation.FallbackEnabled != false {
		t.Errorf("Expected fallback_enabled to be false, got %v", cfg.Generation.FallbackEnabled)
	}
	if cfg.Generation.FallbackProvider != "gemini" {
		t.Errorf("Expected fallback_provider to be 'gemini', got '%s'", cfg.Generation.FallbackProvider)
	}
}

func TestLoadGenerationConfigPartial(t *testing.T) {
	configContent := `generation:
  provider: custom-provider`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config_partial.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	cfg.SetGenerationDefaults()
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Generation.Provider != "custom-provider" {
		t.Errorf("Expected provider to be 'custom-provider', got '%s'", cfg.Generation.Provider)
	}
	if cfg.Generation.FallbackEnabled != true {
		t.Errorf("Expected fallback_enabled to be true (default), got %v", cfg.Generation.FallbackEnabled)
	}
	if cfg.Generation.FallbackProvider != "groq" {
		t.Errorf("Expected fallback_provider to be 'groq' (default), got '%s'", cfg.Generation.FallbackProvider)
	}
}

func TestLoadGenerationConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetGenerationDefaults()

	if cfg.Generation.Provider != "anthropic" {
		t.Errorf("Expected provider to be 'anthropic' (default), got '%s'", cfg.Generation.Provider)
	}
	if cfg.Generation.FallbackEnabled != true {
		t.Errorf("Expected fallback_enabled to be true (default), got %v", cfg.Generation.FallbackEnabled)
	}
	if cfg.Generation.FallbackProvider != "groq" {
		t.Errorf("Expected fallback_provider to be 'groq' (default), got '%s'", cfg.Generation.FallbackProvider)
	}
}

func TestLoadGenerationConfigFileNotFound(t *testing.T) {
	cfg := &Config{}
	err := cfg.LoadFromYAML("non_existent_file.yaml")

	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}
}

func TestLoadGenerationConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte("generation: [not a mapping"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	if err := cfg.LoadFromYAML(configPath); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}
