package mcpserver

import (
	"time"

	"github.com/erraggy/apiformat/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled    bool
	CacheMaxSize    int
	CacheFileTTL    time.Duration
	CacheURLTTL     time.Duration
	CacheContentTTL time.Duration

	// Input limits.
	MaxInlineSize   int64
	MaxCaseValues   int
	AllowPrivateIPs bool

	// Default rule files for the format tool.
	SortFile   string
	FilterFile string
	CasingFile string

	// DefaultStyle is used by convert_case when no style is given.
	DefaultStyle string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APIFORMAT_* environment variables.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    config.EnvBool("APIFORMAT_CACHE_ENABLED", true),
		CacheMaxSize:    config.EnvInt("APIFORMAT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:    config.EnvDuration("APIFORMAT_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:     config.EnvDuration("APIFORMAT_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL: config.EnvDuration("APIFORMAT_CACHE_CONTENT_TTL", 15*time.Minute),
		MaxInlineSize:   config.EnvInt64("APIFORMAT_MAX_INLINE_SIZE", 10*1024*1024),
		MaxCaseValues:   config.EnvInt("APIFORMAT_MAX_CASE_VALUES", 1000),
		AllowPrivateIPs: config.EnvBool("APIFORMAT_ALLOW_PRIVATE_IPS", false),
		SortFile:        config.EnvString("APIFORMAT_SORT_FILE", ""),
		FilterFile:      config.EnvString("APIFORMAT_FILTER_FILE", ""),
		CasingFile:      config.EnvString("APIFORMAT_CASING_FILE", ""),
		DefaultStyle:    config.EnvStyle("APIFORMAT_DEFAULT_STYLE"),
	}
}
