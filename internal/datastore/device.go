package datastore

import (
	"context"

	"hashfarm/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableDevice(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Device)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Device)(nil)).Index("index_device_slug").IfNotExists().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetActiveDevices(ctx context.Context, db *bun.DB) ([]*models.Device, error) {
	var devices []*models.Device
	err := db.NewSelect().Model(&devices).Where("active = true").Order("power ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return devices, nil
}

func GetDeviceBySlug(ctx context.Context, db *bun.DB, slug string) (*models.Device, error) {
	var device models.Device
	err := db.NewSelect().Model(&device).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &device, nil
}

func InsertDevice(ctx context.Context, db *bun.DB, device *models.Device) error {
	_, err := db.NewInsert().Model(device).Exec(ctx)
	return err
}
