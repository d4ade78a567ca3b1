package services

import (
	"context"

	"hashfarm/internal/datastore"
	"hashfarm/internal/models"
	"hashfarm/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceDevice struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceDevice(container *do.Injector) (*ServiceDevice, error) {
	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceDevice{container, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceDevice) GetDevices(ctx context.Context) ([]*models.Device, error) {
	callback := func() ([]*models.Device, error) {
		return datastore.GetActiveDevices(ctx, service.readonlyPostgresDB)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyDevices(), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceDevice) GetDevice(ctx context.Context, slug string) (*models.Device, error) {
	callback := func() (*models.Device, error) {
		return datastore.GetDeviceBySlug(ctx, service.readonlyPostgresDB, slug)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyDevice(slug), CACHE_TTL_5_MINS, callback)
}
