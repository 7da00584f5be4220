package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withHome points the config directory at a temporary home
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "gemini-1.5-flash" {
		t.Errorf("Expected default model to be 'gemini-1.5-flash', got '%s'", cfg.Model)
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("Expected no timeout by default, got %d", cfg.TimeoutSeconds)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Listen == "" {
		t.Error("Listen should have a default")
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected markdown style 'dark', got '%s'", cfg.Markdown.Style)
	}
}

func TestGetConfigDir(t *testing.T) {
	home := withHome(t)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(home, ".kondate") {
		t.Errorf("GetConfigDir() = %s", dir)
	}

	logDir, err := GetLogDir()
	if err != nil {
		t.Fatalf("GetLogDir() returned error: %v", err)
	}
	if logDir != filepath.Join(home, ".kondate", "logs") {
		t.Errorf("GetLogDir() = %s", logDir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	withHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	home := withHome(t)

	cfg := DefaultConfig()
	cfg.Model = "gemini-2.0-flash"
	cfg.TimeoutSeconds = 30
	cfg.TUITheme = "nord"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".kondate", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".kondate")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"model":"gemini-1.5-pro"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %s", cfg.Model)
	}
	if cfg.LogLevel != "info" || cfg.Listen != DefaultConfig().Listen {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".kondate")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("defaults should be returned on parse error")
	}
}

func TestAvailableModels(t *testing.T) {
	models := AvailableModels()
	if len(models) == 0 {
		t.Fatal("AvailableModels() returned nothing")
	}
	if models[0] != DefaultConfig().Model {
		t.Errorf("first model should be the default, got %s", models[0])
	}
}
