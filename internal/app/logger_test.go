package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specialistvlad/forge/internal/testutil"
)

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf testutil.SafeBuffer
		newLogger("info", "json", &buf).Info("hello", "k", "v")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"k":"v"`)
	})

	t.Run("logfmt", func(t *testing.T) {
		var buf testutil.SafeBuffer
		newLogger("info", "logfmt", &buf).Info("hello", "k", "v")
		assert.Contains(t, buf.String(), `msg=hello k=v`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf testutil.SafeBuffer
		logger := newLogger("warn", "text", &buf)
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
