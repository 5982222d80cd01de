package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	if !res.OK() {
		t.Fatalf("default config invalid: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("app:\n  port: 9000\nlog:\n  level: DEBUG\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 9000 || cfg.App.Host != "127.0.0.1" {
		t.Fatalf("app = %+v", cfg.App)
	}
	if cfg.Catalog.MaxUploadBytes != Default().Catalog.MaxUploadBytes {
		t.Fatalf("max_upload_bytes = %d", cfg.Catalog.MaxUploadBytes)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("level = %v", cfg.SlogLevel())
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 70000
	cfg.Catalog.MaxUploadBytes = 0
	cfg.HTTP.RatePerSec = 5
	cfg.HTTP.Burst = 0
	cfg.Log.Level = "verbose"
	cfg.Catalog.WatchSeconds = 10
	cfg.Export.Sheet = "  "

	out, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected errors")
	}
	want := []string{"app.port", "catalog.max_upload_bytes", "http.burst", "log.level"}
	for _, w := range want {
		found := false
		for _, e := range res.Errors {
			if strings.HasPrefix(e, w) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing error for %s in %v", w, res.Errors)
		}
	}
	if len(res.Warnings) != 2 {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if out.Export.Sheet != "Jobs" {
		t.Errorf("sheet = %q", out.Export.Sheet)
	}
}

func TestSaveAtomicAndBootstrap(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != Default().App.Port {
		t.Fatalf("port = %d", cfg.App.Port)
	}

	cfg.App.Port = 40000
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("expected backup: %v", err)
	}
	again, _ := Load(path)
	if again.App.Port != 40000 {
		t.Fatalf("port = %d", again.App.Port)
	}

	cfg.App.Port = 0
	if err := SaveAtomic(path, cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEnsureUserConfigCopiesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "defaults.yml")
	if err := os.WriteFile(src, []byte("app:\n  port: 12345\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	userDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path, err := EnsureUserConfig(userDir, src)
	if err != nil {
		t.Fatal(err)
	}
	cfg, _ := Load(path)
	if cfg.App.Port != 12345 {
		t.Fatalf("port = %d", cfg.App.Port)
	}
}

func TestEnsureUserConfigRejectsInvalidSeed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "defaults.yml")
	if err := os.WriteFile(src, []byte("app:\n  port: 70000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir, src); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yml")); !os.IsNotExist(err) {
		t.Fatalf("config.yml should not exist: %v", err)
	}
}
