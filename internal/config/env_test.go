package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	const key = "APIFORMAT_TEST_BOOL"
	t.Setenv(key, "")
	assert.True(t, EnvBool(key, true))
	t.Setenv(key, "false")
	assert.False(t, EnvBool(key, true))
	t.Setenv(key, "maybe")
	assert.True(t, EnvBool(key, true))
}

func TestEnvInt(t *testing.T) {
	const key = "APIFORMAT_TEST_INT"
	tests := []struct {
		value string
		want  int
	}{
		{"", 7},
		{"42", 42},
		{"0", 7},
		{"-3", 7},
		{"many", 7},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(key, tt.value)
			assert.Equal(t, tt.want, EnvInt(key, 7))
		})
	}
}

func TestEnvInt64(t *testing.T) {
	const key = "APIFORMAT_TEST_INT64"
	t.Setenv(key, "5242880")
	assert.Equal(t, int64(5242880), EnvInt64(key, 1))
	t.Setenv(key, "huge")
	assert.Equal(t, int64(1), EnvInt64(key, 1))
}

func TestEnvDuration(t *testing.T) {
	const key = "APIFORMAT_TEST_DURATION"
	t.Setenv(key, "90s")
	assert.Equal(t, 90*time.Second, EnvDuration(key, time.Minute))
	t.Setenv(key, "-1s")
	assert.Equal(t, time.Minute, EnvDuration(key, time.Minute))
	t.Setenv(key, "soon")
	assert.Equal(t, time.Minute, EnvDuration(key, time.Minute))
}

func TestEnvString(t *testing.T) {
	const key = "APIFORMAT_TEST_STRING"
	t.Setenv(key, "")
	assert.Equal(t, "dflt", EnvString(key, "dflt"))
	t.Setenv(key, "set")
	assert.Equal(t, "set", EnvString(key, "dflt"))
}

func TestEnvStyle(t *testing.T) {
	const key = "APIFORMAT_TEST_STYLE"
	t.Setenv(key, "kebab-case")
	assert.Equal(t, "kebab-case", EnvStyle(key))
	t.Setenv(key, "wavy")
	assert.Empty(t, EnvStyle(key))
}
