package apierrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinels matched by the typed errors below.
var (
	ErrParse         = errors.New("parse error")
	ErrConfig        = errors.New("configuration error")
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// ParseError reports an API document or rule file that could not be decoded.
// Line and Column come from the YAML decoder and are zero when unknown.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrParse.Error())
	if e.Path != "" {
		b.WriteString(" in " + e.Path)
	}
	if e.Line > 0 {
		b.WriteString(" at line " + strconv.Itoa(e.Line))
		if e.Column > 0 {
			b.WriteString(", column " + strconv.Itoa(e.Column))
		}
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ConfigError reports a bad option: an unreadable or malformed rule file,
// conflicting output formats, a malformed filter set or a missing input.
// Option is the configuration key or tool argument at fault.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConfig.Error())
	if e.Option != "" {
		b.WriteString(" for " + e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// ResourceLimitError reports input that exceeds a loader budget, such as
// aliases expanding past the node limit or a download past the size cap.
type ResourceLimitError struct {
	ResourceType string
	Limit        int64
	Actual       int64 // zero when unknown
	Message      string
}

func (e *ResourceLimitError) Error() string {
	var b strings.Builder
	b.WriteString(ErrResourceLimit.Error())
	if e.ResourceType != "" {
		b.WriteString(": " + e.ResourceType)
	}
	if e.Limit > 0 {
		fmt.Fprintf(&b, " (limit: %d", e.Limit)
		if e.Actual > 0 {
			fmt.Fprintf(&b, ", actual: %d", e.Actual)
		}
		b.WriteByte(')')
	}
	writeDetail(&b, e.Message, nil)
	return b.String()
}

// Is matches ErrResourceLimit.
func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

func writeDetail(b *strings.Builder, message string, cause error) {
	if message != "" {
		b.WriteString(": " + message)
	}
	if cause != nil {
		b.WriteString(": " + cause.Error())
	}
}
