package datastore

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableRental(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Rental)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Rental)(nil)).Index("index_rental_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Rental)(nil)).Index("index_rental_expires_at").IfNotExists().Column("expires_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertRental(ctx context.Context, db *bun.DB, rental *models.Rental) error {
	_, err := db.NewInsert().Model(rental).Exec(ctx)
	return err
}

func GetRentalsByUserID(ctx context.Context, db *bun.DB, userID int64) ([]*models.Rental, error) {
	var rentals []*models.Rental
	err := db.NewSelect().Model(&rentals).
		Relation("Device").
		Where("rental.user_id = ?", userID).
		Where("rental.active = true").
		Order("rental.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

// GetRentalsExpiringBetween lists active rentals whose expiry falls
// inside [from, to]. Indefinite rentals (expires_at null) never match.
func GetRentalsExpiringBetween(ctx context.Context, db *bun.DB, from, to time.Time) ([]*models.Rental, error) {
	var rentals []*models.Rental
	err := db.NewSelect().Model(&rentals).
		Relation("Device").
		Where("rental.active = true").
		Where("rental.expires_at IS NOT NULL").
		Where("rental.expires_at >= ?", from).
		Where("rental.expires_at <= ?", to).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func GetExpiredRentals(ctx context.Context, db *bun.DB, now time.Time) ([]*models.Rental, error) {
	var rentals []*models.Rental
	err := db.NewSelect().Model(&rentals).
		Relation("Device").
		Where("rental.active = true").
		Where("rental.expires_at IS NOT NULL").
		Where("rental.expires_at < ?", now).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

// DeleteRental removes the row and reports whether it still existed.
// The delete is the authoritative "done" signal for expiry processing.
func DeleteRental(ctx context.Context, db *bun.DB, id string) (bool, error) {
	res, err := db.NewDelete().Model((*models.Rental)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func CountActiveRentalsByUserID(ctx context.Context, db *bun.DB, userID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.Rental)(nil)).
		Where("user_id = ?", userID).
		Where("active = true").
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}
