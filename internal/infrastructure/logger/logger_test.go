// internal/infrastructure/logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, DebugLevel)

	log.Debug("Debug message", map[string]interface{}{
		"key1": "value1",
	})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Debug message", entry["message"])
	assert.Equal(t, "value1", entry["key1"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
	assert.True(t, strings.Contains(entry["caller"].(string), "logger_test.go"), "caller should point at the call site")

	t.Run("levels are respected", func(t *testing.T) {
		var buf bytes.Buffer
		warnLogger := NewJSONLogger(&buf, WarnLevel)

		warnLogger.Debug("Should not appear", nil)
		warnLogger.Info("Should not appear either", nil)
		assert.Equal(t, "", buf.String())

		warnLogger.Warn("Warning message", nil)
		assert.Contains(t, buf.String(), "Warning message")

		buf.Reset()
		warnLogger.Error("Error message", nil)
		assert.Contains(t, buf.String(), "Error message")
	})

	t.Run("WithField", func(t *testing.T) {
		buf.Reset()
		log.WithField("component", "tracker").Info("With field", nil)

		entry := decodeLine(t, &buf)
		assert.Equal(t, "tracker", entry["component"])
		assert.Equal(t, "With field", entry["message"])
	})

	t.Run("WithFields", func(t *testing.T) {
		buf.Reset()
		log.WithFields(map[string]interface{}{
			"app":     "expense-tracker",
			"version": "1.0.0",
		}).Info("With fields", Fields{"id": 42})

		entry := decodeLine(t, &buf)
		assert.Equal(t, "expense-tracker", entry["app"])
		assert.Equal(t, "1.0.0", entry["version"])
		assert.Equal(t, float64(42), entry["id"])
	})

	t.Run("WithFields empty returns same logger", func(t *testing.T) {
		assert.Same(t, log, log.WithFields(nil))
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		" warn ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefaultLogger()
	assert.NotNil(t, original)
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	GetDefaultLogger().Info("through default", nil)
	assert.Contains(t, buf.String(), "through default")

	SetDefaultLogger(nil)
	assert.NotNil(t, GetDefaultLogger())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded", Fields{"k": "v"})
	log.WithField("a", 1).Info("discarded", nil)
}
