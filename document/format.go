package document

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceFormat represents the serialization format of a document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseFormat converts "json", "yaml" or "yml" into a SourceFormat.
func ParseFormat(s string) SourceFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return SourceFormatJSON
	case "yaml", "yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// FormatFromPath detects the format from a file extension.
func FormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// FormatFromContent detects the format from the content bytes.
// JSON starts with '{' or '[', anything else is treated as YAML.
func FormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// formatFromURL detects the format from a URL path and Content-Type header.
func formatFromURL(urlStr, contentType string) SourceFormat {
	if u, err := url.Parse(urlStr); err == nil && u.Path != "" {
		if f := FormatFromPath(u.Path); f != SourceFormatUnknown {
			return f
		}
	}

	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
