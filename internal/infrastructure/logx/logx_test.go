package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	require.True(t, New("debug").Core().Enabled(zapcore.DebugLevel))
	require.False(t, New("warn").Core().Enabled(zapcore.InfoLevel))
	require.True(t, New("bogus").Core().Enabled(zapcore.InfoLevel))
}

func TestFromContext(t *testing.T) {
	require.Same(t, L(), FromContext(context.Background()))
	l := zap.NewNop()
	require.Same(t, l, FromContext(WithLogger(context.Background(), l)))
}
