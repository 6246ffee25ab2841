// Package config loads vaultshell's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vaultshell/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// OTEL_EXPORTER_OTLP_ENDPOINT, when set, replaces otlp_endpoint.
//
// # Default Values
//
//   - Config file: ~/.config/vaultshell/config.toml
//   - Backend URL: http://127.0.0.1:8000/
//   - Request timeout: none
//   - Log directory: ~/.local/state/vaultshell
//   - Diagnostic log: <log_dir>/vaultshell.log
//   - Log level/format: info/text
//
// # TOML Format
//
//	backend_url = "http://127.0.0.1:8000/"
//	request_timeout = "5s"
//	log_dir = "~/.local/state/vaultshell"
//	log_level = "info"
//	log_format = "text"
//	otlp_endpoint = ""
//
// All fields are optional. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, malformed request_timeout values and unknown
//     log_format values
//
// Missing config files are NOT an error.
package config
