package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	initLogger(true /* verbose */)

	raw := []byte(`decoupled = true
zone = "America/New_York"
offset_file = "/var/lib/bacnet-time/offset"
metrics_address = "127.0.0.1:9100"
`)
	path := filepath.Join(t.TempDir(), "timeservice.toml")
	err := os.WriteFile(path, raw, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig(path)
	if !cfg.Decoupled {
		t.Error("decoupled not decoded")
	}
	if cfg.Zone != "America/New_York" {
		t.Errorf("zone = %q", cfg.Zone)
	}
	if cfg.OffsetFile != "/var/lib/bacnet-time/offset" {
		t.Errorf("offset_file = %q", cfg.OffsetFile)
	}
	if cfg.MetricsAddr != "127.0.0.1:9100" {
		t.Errorf("metrics_address = %q", cfg.MetricsAddr)
	}
}

func TestOffsetPersistence(t *testing.T) {
	initLogger(true /* verbose */)

	path := filepath.Join(t.TempDir(), "offset")

	if _, ok := loadOffset(path); ok {
		t.Fatal("loadOffset succeeded on a missing file")
	}

	storeOffset(path, -36_000)
	offset, ok := loadOffset(path)
	if !ok {
		t.Fatal("loadOffset failed")
	}
	if offset != -36_000 {
		t.Errorf("loadOffset = %d, want -36000", offset)
	}
}
