package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/config"
	"bluetec-catalog/internal/domain"
	infraconfig "bluetec-catalog/internal/infrastructure/config"
	httpserver "bluetec-catalog/internal/infrastructure/http"
	"bluetec-catalog/internal/infrastructure/httpx"
	"bluetec-catalog/internal/infrastructure/logx"
	"bluetec-catalog/internal/infrastructure/pg"
	"bluetec-catalog/internal/infrastructure/preload"
	"bluetec-catalog/internal/infrastructure/provider"
	redisstore "bluetec-catalog/internal/infrastructure/redis"
	"bluetec-catalog/internal/infrastructure/session"
	"bluetec-catalog/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for SESSION_BACKEND=pg")

// fakeCatalogSize is the page size served by PROVIDER=fake.
const fakeCatalogSize = 24

// Session is the configured snapshot backend and its readiness probe.
type Session struct {
	Store application.SessionStore
	Ping  func(ctx context.Context) error
}

// API bundles what cmd/api needs to serve and optionally warm on start.
type API struct {
	Server *httpserver.Server
	Warmer *worker.Warmer
	Config config.Config
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideSession(ctx context.Context, log *zap.Logger, cfg config.Config) (Session, func(), error) {
	switch cfg.SessionBackend {
	case "", "memory":
		return Session{Store: session.NewMemoryStore()}, func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisstore.New(client, cfg.SessionNamespace, cfg.SessionStaleAfter)
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return Session{Store: store, Ping: store.Ping}, cleanup, nil

	case "pg":
		if cfg.DatabaseURL == "" {
			return Session{}, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Session{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Session{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Session{Store: pg.NewSessionStore(db, cfg.SessionNamespace), Ping: db.Ping}, cleanup, nil

	default:
		return Session{}, func() {}, fmt.Errorf("unsupported SESSION_BACKEND=%q", cfg.SessionBackend)
	}
}

func ProvideLister(cfg config.Config) (application.ProductLister, error) {
	switch cfg.Provider {
	case "catalogapi":
		return &provider.CatalogAPIProvider{
			BaseURL: cfg.CatalogAPIBase,
			Path:    cfg.CatalogAPIPath,
			Client: &httpx.Client{
				HTTP:  &http.Client{Timeout: infraconfig.DefaultProviderTimeout},
				Token: cfg.CatalogAPIToken,
			},
		}, nil
	case "", "fake":
		return provider.NewFake(fakeCatalogSize), nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

// ProvidePreloader returns nil when preloading is disabled.
func ProvidePreloader(cfg config.Config, log *zap.Logger) application.ImagePreloader {
	if !cfg.PreloadEnabled {
		return nil
	}
	return preload.NewHTTPPreloader(
		&http.Client{Timeout: infraconfig.DefaultPreloadTimeout},
		cfg.PreloadConcurrency,
		infraconfig.DefaultPreloadTimeout,
		log,
	)
}

func ProvideCacheStore(ctx context.Context, s Session, cfg config.Config, log *zap.Logger) *application.CacheStore {
	return application.NewCacheStore(ctx, s.Store,
		application.WithStaleAfter(cfg.SessionStaleAfter),
		application.WithStoreLogger(log),
	)
}

func ProvideCatalogService(store *application.CacheStore, lister application.ProductLister, p application.ImagePreloader, cfg config.Config, log *zap.Logger) *application.CatalogService {
	opts := []application.Option{
		application.WithFetchTimeout(cfg.FetchTimeout),
		application.WithLogger(log),
	}
	if p != nil {
		opts = append(opts, application.WithCommitHook(application.NewPreloadHook(p)))
	}
	return application.NewCatalogService(store, lister, opts...)
}

func ProvideTuning() domain.LoadTuning { return domain.DefaultLoadTuning() }

// ProvideDeviceProfile is the profile the warmer loads for; HTTP requests
// derive their own from client hints.
func ProvideDeviceProfile(cfg config.Config, tuning domain.LoadTuning) domain.DeviceProfile {
	return domain.NewDeviceProfile(cfg.DeviceScreenWidth, cfg.DeviceMemoryGB, tuning)
}

func ProvideBatchLoader(svc *application.CatalogService, device domain.DeviceProfile, log *zap.Logger) *application.BatchLoader {
	return application.NewBatchLoader(svc, device, log)
}

func ProvideWarmer(loader *application.BatchLoader, svc *application.CatalogService, cfg config.Config, log *zap.Logger) *worker.Warmer {
	return &worker.Warmer{
		Loader:  loader,
		Catalog: svc,
		Items:   cfg.WarmList,
		Every:   cfg.WarmEvery,
		Log:     log,
	}
}

func ProvideServer(svc *application.CatalogService, tuning domain.LoadTuning, s Session, p application.ImagePreloader, log *zap.Logger) *httpserver.Server {
	srv := httpserver.NewServer(svc, tuning, log)
	if s.Ping != nil {
		srv.SetReadyCheck(s.Ping)
	}
	if p != nil {
		srv.SetPreloader(p)
	}
	return srv
}

func ProvideAPI(srv *httpserver.Server, w *worker.Warmer, cfg config.Config) *API {
	return &API{Server: srv, Warmer: w, Config: cfg}
}
