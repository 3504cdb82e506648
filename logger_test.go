package fluri

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	r := NewRegistry()
	l := r.logger

	assert.NotNil(t, l)
	assert.Equal(t, r, l.r)
}

func TestLoggerLog(t *testing.T) {
	r := NewRegistry()
	l := r.logger

	buf := bytes.Buffer{}
	r.LoggerOutput = &buf

	r.LoggerLowestLevel = LoggerLevelDebug

	buf.Reset()
	l.log(LoggerLevelDebug, "")
	assert.NotEmpty(t, buf.String())

	r.LoggerLowestLevel = LoggerLevelInfo

	buf.Reset()
	l.log(LoggerLevelDebug, "")
	assert.Empty(t, buf.String())

	buf.Reset()
	l.log(LoggerLevelWarn, "foobar", map[string]interface{}{
		"foo": "bar",
	})

	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "fluri", m["app_name"])
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "foobar", m["message"])
	assert.Equal(t, "bar", m["foo"])
	assert.Equal(t, "logger_test.go", m["file"])
	assert.NotContains(t, buf.String(), "\t")

	r.DebugMode = true

	buf.Reset()
	l.log(LoggerLevelInfo, "", map[string]interface{}{
		"foo": "bar",
	})
	assert.Contains(t, buf.String(), "\t")
	assert.Contains(t, buf.String(), "\n")
	assert.Contains(t, buf.String(), "\"foo\": \"bar\"")

	r.LoggerOutput = nil
	assert.NotPanics(t, func() {
		l.log(LoggerLevelError, "")
	})
}

func TestLoggerLogOff(t *testing.T) {
	r := NewRegistry()

	buf := bytes.Buffer{}
	r.LoggerOutput = &buf
	r.LoggerLowestLevel = LoggerLevelOff

	r.logger.log(LoggerLevelPanic, "")
	assert.Empty(t, buf.String())
}

func TestLoggerLevelString(t *testing.T) {
	assert.Equal(t, "debug", LoggerLevelDebug.String())
	assert.Equal(t, "info", LoggerLevelInfo.String())
	assert.Equal(t, "warn", LoggerLevelWarn.String())
	assert.Equal(t, "error", LoggerLevelError.String())
	assert.Equal(t, "fatal", LoggerLevelFatal.String())
	assert.Equal(t, "panic", LoggerLevelPanic.String())
	assert.Equal(t, "off", LoggerLevelOff.String())
	assert.Equal(t, "off", LoggerLevel(255).String())
}

func TestParseLoggerLevel(t *testing.T) {
	assert.Equal(t, LoggerLevelDebug, ParseLoggerLevel("debug"))
	assert.Equal(t, LoggerLevelWarn, ParseLoggerLevel("WARN"))
	assert.Equal(t, LoggerLevelPanic, ParseLoggerLevel("Panic"))
	assert.Equal(t, LoggerLevelOff, ParseLoggerLevel("off"))
	assert.Equal(t, LoggerLevelOff, ParseLoggerLevel("verbose"))
}
