package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":8080"

[remote]
insecure_skip_verify = true
timeout = "45s"

[render]
merge = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.OutputDir != DefaultOutputDir {
		t.Errorf("Server.OutputDir = %q, want default %q", cfg.Server.OutputDir, DefaultOutputDir)
	}
	if !cfg.Remote.InsecureSkipVerify {
		t.Error("Remote.InsecureSkipVerify = false, want true")
	}
	if cfg.Remote.Timeout.Duration != 45*time.Second {
		t.Errorf("Remote.Timeout = %v, want 45s", cfg.Remote.Timeout)
	}
	if cfg.Render.Merge {
		t.Error("Render.Merge = true, want false")
	}
	if cfg.Render.Prefix != DefaultPrefix {
		t.Errorf("Render.Prefix = %q, want %q", cfg.Render.Prefix, DefaultPrefix)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 80\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("Load() error = %v, want unknown keys error", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "[remote]\ntimeout = \"soon\"\n"},
		{"zero scale", "[render]\nscale = 0.0\n"},
		{"empty prefix", "[render]\nprefix = \"\"\n"},
		{"syntax", "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg", "handlermap", "config.toml")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
