package datastore

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_username").IfNotExists().Column("username").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserByID(ctx context.Context, db *bun.DB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// IncrementComputingPower adds delta to the user's total in a single
// statement so a concurrent sweep cannot lose the update.
func IncrementComputingPower(ctx context.Context, db *bun.DB, userID int64, delta float64) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("total_computing_power = total_computing_power + ?", delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

// DecrementComputingPower subtracts delta with a floor at zero. The
// clamp lives in the store so a stale total can never go negative.
func DecrementComputingPower(ctx context.Context, db *bun.DB, userID int64, delta float64) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("total_computing_power = GREATEST(total_computing_power - ?, 0)", delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}
