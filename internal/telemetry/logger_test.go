package telemetry

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	group   string
	enabled bool
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &mockHandler{enabled: h.enabled, group: h.group, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &mockHandler{enabled: h.enabled, attrs: h.attrs, group: group}
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: true}

	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Handle", func(t *testing.T) {
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
		err := multi.Handle(context.Background(), record)
		assert.NoError(t, err)
		assert.Len(t, h1.getRecords(), 1)
		assert.Len(t, h2.getRecords(), 1)
		assert.Equal(t, "test message", h1.getRecords()[0].Message)
	})

	t.Run("Handle skips disabled handlers", func(t *testing.T) {
		h2.enabled = false
		defer func() { h2.enabled = true }()

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "second", 0)
		assert.NoError(t, multi.Handle(context.Background(), record))
		assert.Len(t, h1.getRecords(), 2)
		assert.Len(t, h2.getRecords(), 1)
	})

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

		off := &multiHandler{handlers: []slog.Handler{&mockHandler{}, &mockHandler{}}}
		assert.False(t, off.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("WithAttrs", func(t *testing.T) {
		attrs := []slog.Attr{slog.String("key", "value")}
		newMulti, ok := multi.WithAttrs(attrs).(*multiHandler)
		require.True(t, ok, "WithAttrs should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, attrs, mockH.attrs)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		newMulti, ok := multi.WithGroup("my-group").(*multiHandler)
		require.True(t, ok, "WithGroup should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, "my-group", mockH.group)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Console output", func(t *testing.T) {
		var buf bytes.Buffer
		orig := logOutput
		logOutput = &buf
		defer func() { logOutput = orig }()

		logger := NewLogger(true, "")
		logger.Debug("debug message", "line", "CPU speed:")
		assert.Contains(t, buf.String(), "debug message")
		assert.Contains(t, buf.String(), "CPU speed:")
	})

	t.Run("Debug disabled", func(t *testing.T) {
		var buf bytes.Buffer
		orig := logOutput
		logOutput = &buf
		defer func() { logOutput = orig }()

		NewLogger(false, "").Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("File logging", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sbreport.log")

		orig := logOutput
		logOutput = io.Discard
		defer func() { logOutput = orig }()

		logger := NewLogger(false, path)
		logger.Info("file message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "file message")
	})

	t.Run("Console and file", func(t *testing.T) {
		var buf bytes.Buffer
		orig := logOutput
		logOutput = &buf
		defer func() { logOutput = orig }()

		path := filepath.Join(t.TempDir(), "both.log")
		NewLogger(false, path).Info("twice")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "twice")
		assert.Contains(t, buf.String(), "twice")
	})
}

func TestNewLogger_FileError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	invalidPath := filepath.Join(t.TempDir(), "nonexistent/test.log")
	orig := logOutput
	logOutput = io.Discard
	defer func() { logOutput = orig }()

	logger := NewLogger(false, invalidPath)
	assert.NotNil(t, logger)

	output := buf.String()
	assert.True(t, strings.Contains(output, "Failed to open log file"), "Expected log file error message, got: "+output)
}
