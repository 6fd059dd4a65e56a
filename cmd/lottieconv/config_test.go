package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lottieconv.toml")
	doc := `
[output]
fps = 30.0
width = 512
height = 512
loop = 3
quality = 85

[library]
path = "/opt/rlottie/librlottie.so"
cache_size = 1048576
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.FPS != 30.0 {
		t.Errorf("FPS = %v, want 30", cfg.Output.FPS)
	}
	if cfg.Output.Width != 512 || cfg.Output.Height != 512 {
		t.Errorf("size = %dx%d, want 512x512", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Output.Loop != 3 {
		t.Errorf("Loop = %d, want 3", cfg.Output.Loop)
	}
	if cfg.Library.Path != "/opt/rlottie/librlottie.so" {
		t.Errorf("Library.Path = %q", cfg.Library.Path)
	}
	if cfg.Library.CacheSize != 1048576 {
		t.Errorf("CacheSize = %d, want 1048576", cfg.Library.CacheSize)
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "lottieconv.toml"), false)
	if err != nil {
		t.Fatalf("missing default config must not error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing default config should be empty, got %+v", cfg)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), true); err == nil {
		t.Error("explicitly named missing config must error")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[output\nfps ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path, true); err == nil {
		t.Error("malformed TOML must error")
	}
}
