// Package config loads handlermap settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] in that case, so
// the CLI works without any configuration. Values present in the file replace
// the defaults field by field.
//
//	[server]
//	addr = ":5000"
//	output_dir = "static"
//
//	[remote]
//	insecure_skip_verify = false
//	timeout = "0s"
//
//	[render]
//	prefix = "handler_graph"
//	merge = true
//	scale = 2.0
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "handlermap"

// Default values.
const (
	DefaultAddr      = ":5000"
	DefaultOutputDir = "static"
	DefaultPrefix    = "handler_graph"
	DefaultScale     = 2.0
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Remote RemoteConfig `toml:"remote"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	OutputDir string `toml:"output_dir"` // row files, images and documents live here
}

// RemoteConfig configures access to the voicemail administration API.
type RemoteConfig struct {
	// InsecureSkipVerify disables TLS certificate verification. Only for
	// servers with self-signed certificates.
	InsecureSkipVerify bool     `toml:"insecure_skip_verify"`
	Timeout            Duration `toml:"timeout"` // zero means transport default
}

// RenderConfig configures the diagram renderer.
type RenderConfig struct {
	Prefix string  `toml:"prefix"`
	Merge  bool    `toml:"merge"`
	Scale  float64 `toml:"scale"`
}

// Duration is a time.Duration that decodes from TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: DefaultAddr, OutputDir: DefaultOutputDir},
		Render: RenderConfig{Prefix: DefaultPrefix, Merge: true, Scale: DefaultScale},
	}
}

// Load reads the TOML file at path on top of [Default].
// An empty path resolves to [DefaultPath]; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would make the server or renderer misbehave.
func (c Config) Validate() error {
	if c.Server.OutputDir == "" {
		return fmt.Errorf("server.output_dir must not be empty")
	}
	if c.Render.Prefix == "" {
		return fmt.Errorf("render.prefix must not be empty")
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	}
	if c.Remote.Timeout.Duration < 0 {
		return fmt.Errorf("remote.timeout must not be negative")
	}
	return nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/handlermap/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
