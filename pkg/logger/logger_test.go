package logger

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func resetDefault(t *testing.T) {
	t.Helper()
	orig := defaultLogger
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = orig })
}

func TestWithFields_BeforeInit(t *testing.T) {
	resetDefault(t)

	out := captureStdout(t, func() {
		WithFields(map[string]interface{}{"component": "loader"}).Info("dataset loaded")
	})
	assert.Contains(t, out, "component=loader")
	assert.Contains(t, out, "dataset loaded")
}

func TestWithField_BeforeInit(t *testing.T) {
	resetDefault(t)

	out := captureStdout(t, func() {
		WithField("code", "JFK").Warn("skipping airport")
	})
	assert.Contains(t, out, "code=JFK")
	assert.Contains(t, out, "skipping airport")
}

func TestNew_LevelFiltering(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Level: "warn", Format: "text"})
		l.Info("suppressed")
		l.Warn("emitted")
	})
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
}

func TestJSONFormat(t *testing.T) {
	out := captureStdout(t, func() {
		New(Config{Level: "info", Format: "json"}).WithField("flights", 3).Info("sync complete")
	})
	assert.Contains(t, out, `"flights":3`)
	assert.Contains(t, out, `"msg":"sync complete"`)
}
