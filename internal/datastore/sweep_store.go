package datastore

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/uptrace/bun"
)

// SweepStore adapts the bun free functions to the narrow contract the
// expiry sweep consumes (interfaces.SweepStore).
type SweepStore struct {
	DB *bun.DB
}

func (s *SweepStore) RentalsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Rental, error) {
	return GetRentalsExpiringBetween(ctx, s.DB, from, to)
}

func (s *SweepStore) ExpiredRentals(ctx context.Context, now time.Time) ([]*models.Rental, error) {
	return GetExpiredRentals(ctx, s.DB, now)
}

func (s *SweepStore) DeleteRental(ctx context.Context, id string) (bool, error) {
	return DeleteRental(ctx, s.DB, id)
}

func (s *SweepStore) DecrementComputingPower(ctx context.Context, userID int64, delta float64) error {
	return DecrementComputingPower(ctx, s.DB, userID, delta)
}

func (s *SweepStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	return InsertNotification(ctx, s.DB, n)
}

func (s *SweepStore) NotificationExistsSince(ctx context.Context, userID int64, title string, since time.Time) (bool, error) {
	return NotificationExistsSince(ctx, s.DB, userID, title, since)
}
