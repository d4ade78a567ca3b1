package interfaces

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// SweepStore is everything the expiry sweep needs from persistence:
// the two expiry-window queries, the floor-at-zero capacity decrement,
// delete-by-id, and the notification insert + recency check.
type SweepStore interface {
	RentalsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Rental, error)
	ExpiredRentals(ctx context.Context, now time.Time) ([]*models.Rental, error)

	// DeleteRental reports whether the row was actually removed; a
	// false return means another sweep already claimed this rental.
	DeleteRental(ctx context.Context, id string) (bool, error)

	// DecrementComputingPower subtracts delta from the user's total,
	// clamping at zero inside the store.
	DecrementComputingPower(ctx context.Context, userID int64, delta float64) error

	InsertNotification(ctx context.Context, n *models.Notification) error
	NotificationExistsSince(ctx context.Context, userID int64, title string, since time.Time) (bool, error)
}
