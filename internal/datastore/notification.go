package datastore

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableNotification(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Notification)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Notification)(nil)).Index("index_notification_user_created").IfNotExists().Column("user_id", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertNotification(ctx context.Context, db *bun.DB, notification *models.Notification) error {
	_, err := db.NewInsert().Model(notification).Exec(ctx)
	return err
}

// NotificationExistsSince reports whether the user already received a
// notification with this title after `since`. The sweep uses it as the
// dedup lookup before inserting a warning.
func NotificationExistsSince(ctx context.Context, db *bun.DB, userID int64, title string, since time.Time) (bool, error) {
	count, err := db.NewSelect().Model((*models.Notification)(nil)).
		Where("user_id = ?", userID).
		Where("title = ?", title).
		Where("created_at >= ?", since).
		Count(ctx)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func GetNotificationsByUserID(ctx context.Context, db *bun.DB, userID int64, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := db.NewSelect().Model(&notifications).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func CountUnreadNotifications(ctx context.Context, db *bun.DB, userID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.Notification)(nil)).
		Where("user_id = ?", userID).
		Where("read = false").
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func MarkNotificationRead(ctx context.Context, db *bun.DB, userID int64, id int64) error {
	_, err := db.NewUpdate().Model((*models.Notification)(nil)).
		Set("read = true").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}
