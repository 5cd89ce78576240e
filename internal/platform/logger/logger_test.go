package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		wantErr bool
	}{
		{name: "default level", cfg: Config{}, level: zapcore.InfoLevel},
		{name: "debug dev mode", cfg: Config{Level: "debug", DevMode: true}, level: zapcore.DebugLevel},
		{name: "warn", cfg: Config{Level: "warn"}, level: zapcore.WarnLevel},
		{name: "invalid level", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.level))
			assert.False(t, log.Core().Enabled(tt.level-1))
		})
	}
}

func TestBuildZapConfig(t *testing.T) {
	t.Parallel()

	prod := buildZapConfig(false)
	assert.Equal(t, "json", prod.Encoding)
	require.NotNil(t, prod.Sampling)
	assert.Equal(t, 100, prod.Sampling.Initial)
	assert.Equal(t, "ts", prod.EncoderConfig.TimeKey)

	dev := buildZapConfig(true)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, "ts", dev.EncoderConfig.TimeKey)
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	rid, ok := RequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", rid)

	WithContext(ctx, base).Info("with id")
	WithContext(context.Background(), base).Info("without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
