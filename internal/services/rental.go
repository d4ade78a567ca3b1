package services

import (
	"context"
	"time"

	"hashfarm/internal/datastore"
	"hashfarm/internal/models"
	"hashfarm/internal/pkg/accrual"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceRental struct {
	container          *do.Injector
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB

	serviceDevice *ServiceDevice
	serviceUser   *ServiceUser
}

func NewServiceRental(container *do.Injector) (*ServiceRental, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	serviceDevice, err := do.Invoke[*ServiceDevice](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return &ServiceRental{container, rs, postgresDB, readonlyPostgresDB, serviceDevice, serviceUser}, nil
}

// StartRental leases one device to the user: rental row plus the
// atomic capacity increment. The per-user lock keeps the increment
// from racing a concurrent sweep removal of the same user's rows.
func (service *ServiceRental) StartRental(ctx context.Context, user *models.User, deviceSlug string) (*models.Rental, error) {
	device, err := service.serviceDevice.GetDevice(ctx, deviceSlug)
	if err != nil {
		return nil, err
	}

	if !device.Active {
		return nil, errorx.Wrap(ErrDeviceInactive, errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyUserRental(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrRentalLocked, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(device.DurationDays) * 24 * time.Hour)

	rental := &models.Rental{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		DeviceID:  device.ID,
		StartedAt: &now,
		ExpiresAt: &expiresAt,
		Active:    true,
		CreatedAt: now,
	}

	err = datastore.InsertRental(ctx, service.postgresDB, rental)
	if err != nil {
		return nil, err
	}

	err = datastore.IncrementComputingPower(ctx, service.postgresDB, user.ID, device.Power)
	if err != nil {
		return nil, err
	}

	// nolint:errcheck
	service.serviceUser.ClearUserCache(ctx, user.ID)

	rental.Device = device
	decorate(rental, now)
	return rental, nil
}

// ListUserRentals returns the user's active rentals decorated with the
// live accrual projection at instant now.
func (service *ServiceRental) ListUserRentals(ctx context.Context, userID int64, now time.Time) ([]*models.Rental, error) {
	rentals, err := datastore.GetRentalsByUserID(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, err
	}

	for _, rental := range rentals {
		decorate(rental, now)
	}

	return rentals, nil
}

func decorate(rental *models.Rental, now time.Time) {
	if rental.Device == nil {
		return
	}

	total := accrual.TotalPromised(rental.Device.DailyReward, rental.Device.DurationDays, rental.Device.BonusPercent)
	rental.TotalReward = total
	rental.Progress = accrual.Progress(now, rental.StartedAt, rental.ExpiresAt)
	rental.AccruedReward = accrual.Accrued(now, rental.StartedAt, rental.ExpiresAt, total)

	if rental.ExpiresAt != nil {
		if remaining := rental.ExpiresAt.Sub(now); remaining > 0 {
			rental.RemainingSeconds = int64(remaining.Seconds())
		}
	}
}
