package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "warn", want: zapcore.WarnLevel},
		{in: "ERROR", want: zapcore.ErrorLevel},
		{in: "loud", want: zapcore.InfoLevel, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWriterLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriterLogger("warn", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.String("command", "foo"))
	Sync(logger)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "foo", entry["command"])
}

func TestNewFileLogger(t *testing.T) {
	logger, err := NewFileLogger(Config{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))

	path := filepath.Join(t.TempDir(), "termfolio.log")
	logger, err = NewFileLogger(Config{FilePath: path, Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewFileLogger(Config{FilePath: path, Level: "nope"})
	assert.Error(t, err)
}
