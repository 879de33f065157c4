//go:build wireinject

package bootstrap

import (
	"context"

	"bluetec-catalog/internal/infrastructure/worker"

	"github.com/google/wire"
)

var catalogSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideSession,
	ProvideLister,
	ProvidePreloader,
	ProvideCacheStore,
	ProvideCatalogService,
	ProvideTuning,
	ProvideDeviceProfile,
	ProvideBatchLoader,
	ProvideWarmer,
)

// API injector: builds *API + Cleanup
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		catalogSet,
		ProvideServer,
		ProvideAPI,
	)
	return nil, nil, nil
}

// Warmer injector: builds *worker.Warmer + Cleanup
func InitWarmer(ctx context.Context) (*worker.Warmer, func(), error) {
	wire.Build(catalogSet)
	return nil, nil, nil
}
