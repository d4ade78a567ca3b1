package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hashfarm/internal/datastore"
	"hashfarm/internal/models"
	"hashfarm/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

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

	return &ServiceUser{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceUser) FindUser(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.readonlyPostgresDB, userID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUser(userID), CACHE_TTL_1_MIN, callback)
}

// FindOrCreateUser resolves the authenticated principal to a stored
// user, creating the row on first sight.
func (service *ServiceUser) FindOrCreateUser(ctx context.Context, auth *models.UserFromAuth) (*models.User, error) {
	user, err := datastore.FindUserByID(ctx, service.postgresDB, auth.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	user = &models.User{
		ID:        auth.ID,
		Username:  auth.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return datastore.CreateUser(ctx, service.postgresDB, user)
}

func (service *ServiceUser) ClearUserCache(ctx context.Context, userID int64) error {
	return service.cache.Delete(ctx, DBKeyUser(userID))
}
