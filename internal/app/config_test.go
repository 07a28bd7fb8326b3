package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DocumentPath != "catalog.json" {
		t.Fatalf("unexpected default document path: %s", cfg.DocumentPath)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected default metrics addr: %s", cfg.MetricsAddr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := "document_path = \"/data/catalog.json\"\nmetrics_addr = \":9191\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DocumentPath != "/data/catalog.json" {
		t.Fatalf("unexpected document path: %s", cfg.DocumentPath)
	}
	if cfg.MetricsAddr != ":9191" {
		t.Fatalf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte("document_path = \"/data/catalog.json\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CATALOG_DOCUMENT_PATH", "/override/catalog.json")
	t.Setenv("CATALOG_METRICS_ADDR", "127.0.0.1:9999")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DocumentPath != "/override/catalog.json" {
		t.Fatalf("env must override file, got %s", cfg.DocumentPath)
	}
	if cfg.MetricsAddr != "127.0.0.1:9999" {
		t.Fatalf("env must override default, got %s", cfg.MetricsAddr)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte("document_path = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error for invalid TOML")
	}
}
