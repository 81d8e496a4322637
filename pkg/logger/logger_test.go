package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/pkg/logger"
)

func TestSetupProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger.Setup("production", "", &buf)
	t.Cleanup(func() { logger.Setup("local", "", os.Stdout) })

	logger.Debug("hidden")
	logger.Info("shown", "id", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.EqualValues(t, 3, line["id"])
}

func TestSetupLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	logger.Setup("local", "error", &buf)
	t.Cleanup(func() { logger.Setup("local", "", os.Stdout) })

	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	tagged := logger.L.With("request_id", "abc")
	ctx := logger.InjectLogger(context.Background(), tagged)
	assert.Same(t, tagged, logger.WithCtx(ctx))
}
