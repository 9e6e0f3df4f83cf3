// Package config loads settings for the snipday client and the snipdayd backend.
//
// # Client Configuration
//
// Load reads a TOML file, by default ~/.config/snipday/config.toml:
//
//	api_base = "http://localhost:8080"
//	poll_seconds = 60
//	request_timeout_seconds = 5
//	log_file = "~/.local/state/snipday/snipday.log"
//
// Every field is optional. A missing file is not an error; defaults are
// used so the client works out of the box against a local backend. Empty or
// non-positive values also fall back to defaults. Tilde expansion is applied
// to log_file.
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// # Backend Configuration
//
// LoadServer reads environment variables with caarlos0/env:
//
//	SNIPDAY_ADDR             listen address (":8080")
//	SNIPDAY_EXPIRATION       snippet lifetime ("10s")
//	SNIPDAY_MAX_CODE_LENGTH  maximum code size in bytes (500)
//	SNIPDAY_SWEEP_INTERVAL   expired-snippet sweep cadence ("1s")
//	SNIPDAY_CORS_ORIGINS     comma-separated origins ("*")
//	SNIPDAY_LOG_LEVEL        debug, info, warn, error ("info")
//	SNIPDAY_LOG_FORMAT       text or json ("text")
//	SNIPDAY_READ_TIMEOUT     ("5s")
//	SNIPDAY_WRITE_TIMEOUT    ("10s")
//	SNIPDAY_SHUTDOWN_TIMEOUT ("10s")
//
// Both loaders are stateless and return values; nothing is cached globally.
package config
