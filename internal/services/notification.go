package services

import (
	"context"
	"fmt"
	"time"

	"hashfarm/internal/datastore"
	"hashfarm/internal/models"
	"hashfarm/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

func NotificationTitleExpiring(deviceName string) string {
	return fmt.Sprintf("%s expiring soon", deviceName)
}

func NotificationTitleRemoved(deviceName string) string {
	return fmt.Sprintf("%s expired", deviceName)
}

type ServiceNotification struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceNotification(container *do.Injector) (*ServiceNotification, error) {
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

	return &ServiceNotification{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceNotification) ListUserNotifications(ctx context.Context, userID int64, page int) ([]*models.Notification, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * NOTIFICATION_PAGE_LIMIT
	return datastore.GetNotificationsByUserID(ctx, service.readonlyPostgresDB, userID, NOTIFICATION_PAGE_LIMIT, offset)
}

func (service *ServiceNotification) UnreadCount(ctx context.Context, userID int64) (int, error) {
	callback := func() (int, error) {
		return datastore.CountUnreadNotifications(ctx, service.readonlyPostgresDB, userID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUserUnreadCount(userID), CACHE_TTL_5_SECONDS, callback)
}

func (service *ServiceNotification) MarkRead(ctx context.Context, userID int64, id int64) error {
	err := datastore.MarkNotificationRead(ctx, service.postgresDB, userID, id)
	if err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyUserUnreadCount(userID))
}

// Notify writes a user-facing message from outside the sweep path.
func (service *ServiceNotification) Notify(ctx context.Context, userID int64, title, body string) error {
	return datastore.InsertNotification(ctx, service.postgresDB, &models.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
}
