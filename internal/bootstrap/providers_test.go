package bootstrap

import (
	"context"
	"testing"
	"time"

	"bluetec-catalog/internal/config"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/provider"
	redisstore "bluetec-catalog/internal/infrastructure/redis"
	"bluetec-catalog/internal/infrastructure/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProvideSession_Memory(t *testing.T) {
	s, cleanup, err := ProvideSession(context.Background(), zap.NewNop(), config.Config{SessionBackend: "memory"})
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &session.MemoryStore{}, s.Store)
	require.Nil(t, s.Ping)
}

func TestProvideSession_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{
		SessionBackend:    "redis",
		RedisAddr:         mr.Addr(),
		SessionNamespace:  "bluetec:test",
		SessionStaleAfter: time.Minute,
	}
	s, cleanup, err := ProvideSession(context.Background(), zap.NewNop(), cfg)
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &redisstore.Store{}, s.Store)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Store.Save(context.Background(), []byte(`{}`)))
	require.True(t, mr.Exists("bluetec:test"))
}

func TestProvideSession_PGRequiresURL(t *testing.T) {
	_, cleanup, err := ProvideSession(context.Background(), zap.NewNop(), config.Config{SessionBackend: "pg"})
	defer cleanup()
	require.ErrorIs(t, err, ErrMissingDBURL)
}

func TestProvideSession_Unknown(t *testing.T) {
	_, cleanup, err := ProvideSession(context.Background(), zap.NewNop(), config.Config{SessionBackend: "etcd"})
	defer cleanup()
	require.Error(t, err)
}

func TestProvideLister(t *testing.T) {
	l, err := ProvideLister(config.Config{Provider: "fake"})
	require.NoError(t, err)
	require.IsType(t, &provider.Fake{}, l)

	l, err = ProvideLister(config.Config{Provider: "catalogapi", CatalogAPIBase: "http://catalog"})
	require.NoError(t, err)
	require.IsType(t, &provider.CatalogAPIProvider{}, l)

	_, err = ProvideLister(config.Config{Provider: "soap"})
	require.Error(t, err)
}

func TestProvidePreloader_Disabled(t *testing.T) {
	require.Nil(t, ProvidePreloader(config.Config{PreloadEnabled: false}, zap.NewNop()))
	require.NotNil(t, ProvidePreloader(config.Config{PreloadEnabled: true}, zap.NewNop()))
}

func TestInitAPI_MemoryBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("PROVIDER", "fake")
	t.Setenv("PRELOAD_ENABLED", "false")
	t.Setenv("WARM_LIST", "monitores:3")

	api, cleanup, err := InitAPI(context.Background())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, api.Server)
	require.Equal(t, []domain.BatchItem{{Category: "monitores", Limit: 3}}, api.Warmer.Items)
}

func TestInitWarmer_WarmsRedisMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("PROVIDER", "fake")
	t.Setenv("PRELOAD_ENABLED", "false")
	t.Setenv("WARM_LIST", "monitores:3,perifericos/mouses:2")
	t.Setenv("WARM_EVERY_MS", "0")
	t.Setenv("DEVICE_SCREEN_WIDTH", "390")

	w, cleanup, err := InitWarmer(context.Background())
	require.NoError(t, err)
	defer cleanup()

	w.Start(context.Background())
	require.True(t, mr.Exists("bluetec:products-cache"))
}
