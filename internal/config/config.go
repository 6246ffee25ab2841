package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings vaultshell reads from config.toml.
type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
}

const (
	defaultConfigPath = "~/.config/vaultshell/config.toml"
	defaultBackendURL = "http://127.0.0.1:8000/"
	defaultLogDir     = "~/.local/state/vaultshell"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"

	otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL     string `toml:"backend_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogDir         string `toml:"log_dir"`
		LogLevel       string `toml:"log_level"`
		LogFormat      string `toml:"log_format"`
		OTLPEndpoint   string `toml:"otlp_endpoint"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if timeout < 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout must not be negative")
		}
		cfg.RequestTimeout = timeout
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		if v != "text" && v != "json" {
			return Config{}, fmt.Errorf("parse config: unknown log_format %q (want text or json)", raw.LogFormat)
		}
		cfg.LogFormat = v
	}
	cfg.OTLPEndpoint = strings.TrimSpace(raw.OTLPEndpoint)
	cfg.applyEnv()

	return cfg, nil
}

// LogPath returns the diagnostic log file path.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/vaultshell.log")
	}
	return filepath.Join(c.LogDir, "vaultshell.log")
}

func defaults() Config {
	return Config{
		BackendURL: defaultBackendURL,
		LogDir:     mustExpand(defaultLogDir),
		LogLevel:   defaultLogLevel,
		LogFormat:  defaultLogFormat,
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(otlpEndpointEnv)); v != "" {
		c.OTLPEndpoint = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
