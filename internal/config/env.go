package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/apiformat/casing"
)

// EnvPrefix starts every environment variable read by apiformat.
const EnvPrefix = "APIFORMAT_"

// Invalid values log a warning and fall back to the default.

// EnvBool reads a boolean environment variable.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

// EnvInt reads a positive integer environment variable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvInt64 reads a positive 64-bit integer environment variable.
func EnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvDuration reads a positive duration such as "90s" or "15m".
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// EnvString reads a string environment variable.
func EnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvStyle reads a casing style name. Unknown styles are ignored.
func EnvStyle(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, ok := casing.ParseStyle(v); !ok {
		slog.Warn("invalid casing style env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}
