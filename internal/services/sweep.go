package services

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"hashfarm/internal/datastore/redis_store"
	"hashfarm/internal/interfaces"
	"hashfarm/internal/models"
	"hashfarm/internal/pkg"

	"github.com/go-redsync/redsync/v4"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// ServiceSweep drives one invocation of the expiry batch: warn rentals
// entering the 7-days-out bucket, then reclaim capacity and delete the
// ones already past expiry. Every step is safe to repeat, so an
// overlapping or re-run invocation never duplicates side effects.
type ServiceSweep struct {
	container *do.Injector
	store     interfaces.SweepStore
	rs        *redsync.Redsync
	redisDB   redis.UniversalClient

	serviceConfig *ServiceConfig
}

func NewServiceSweep(container *do.Injector) (*ServiceSweep, error) {
	store, err := do.Invoke[interfaces.SweepStore](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSweep{container, store, rs, redisDB, serviceConfig}, nil
}

// Sweep processes the rental store at instant now. A best-effort redis
// lock suppresses overlapping runs; when the lock is held elsewhere
// the invocation reports itself skipped, since the holder will do the
// same work.
func (service *ServiceSweep) Sweep(ctx context.Context, now time.Time) (*models.SweepSummary, error) {
	mutex := service.rs.NewMutex(LockKeySweep())
	if err := mutex.TryLock(); err != nil {
		return &models.SweepSummary{Success: true, Skipped: true, Timestamp: now.UTC()}, nil
	}
	// nolint:errcheck
	defer mutex.Unlock()

	warningDays, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_EXPIRY_WARNING_DAYS, DEFAULT_EXPIRY_WARNING_DAYS)
	dedupHours, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_NOTIFY_DEDUP_HOURS, DEFAULT_NOTIFY_DEDUP_HOURS)
	workers, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SWEEP_WORKERS, DEFAULT_SWEEP_WORKERS)
	if workers < 1 {
		workers = 1
	}

	summary, err := service.sweep(ctx, now, warningDays, time.Duration(dedupHours)*time.Hour, workers)
	if err != nil {
		return nil, err
	}

	// fire and forget
	// nolint:errcheck
	redis_store.SetLastSweep(ctx, service.redisDB, summary)

	return summary, nil
}

func (service *ServiceSweep) sweep(ctx context.Context, now time.Time, warningDays int, dedupWindow time.Duration, workers int) (*models.SweepSummary, error) {
	// Both listings happen up front: a failure here aborts the whole
	// run and leaves everything to the next scheduled invocation.
	from, to := pkg.WarningBucket(now, warningDays)
	expiring, err := service.store.RentalsExpiringBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing expiring rentals: %w", err)
	}

	expired, err := service.store.ExpiredRentals(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("listing expired rentals: %w", err)
	}

	var notified, removed atomic.Int64

	// Per-rental units are independent; a failed unit is logged and
	// stays eligible for the next sweep.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rental := range expiring {
		rental := rental
		g.Go(func() error {
			warned, err := service.warnExpiring(gctx, rental, now, dedupWindow)
			if err != nil {
				log.Println("sweep: warn rental", rental.ID, "error:", err)
				return nil
			}
			if warned {
				notified.Add(1)
			}
			return nil
		})
	}
	// nolint:errcheck
	g.Wait()

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rental := range expired {
		rental := rental
		g.Go(func() error {
			done, err := service.removeExpired(gctx, rental, now)
			if err != nil {
				log.Println("sweep: remove rental", rental.ID, "error:", err)
			}
			if done {
				removed.Add(1)
			}
			return nil
		})
	}
	// nolint:errcheck
	g.Wait()

	return &models.SweepSummary{
		Success:          true,
		ExpiringNotified: int(notified.Load()),
		ExpiredRemoved:   int(removed.Load()),
		Timestamp:        now.UTC(),
	}, nil
}

// warnExpiring inserts the one-time expiring-soon notification unless
// a matching one already exists inside the dedup window. The lookup
// and the insert are not transactional; the window being much wider
// than the sweep cadence bounds the duplicate risk.
func (service *ServiceSweep) warnExpiring(ctx context.Context, rental *models.Rental, now time.Time, dedupWindow time.Duration) (bool, error) {
	if rental.Device == nil {
		return false, fmt.Errorf("rental %s has no device", rental.ID)
	}

	title := NotificationTitleExpiring(rental.Device.Name)
	exists, err := service.store.NotificationExistsSince(ctx, rental.UserID, title, now.Add(-dedupWindow))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = service.store.InsertNotification(ctx, &models.Notification{
		UserID:    rental.UserID,
		Title:     title,
		Body:      fmt.Sprintf("Your %s rental ends on %s. Rewards stop accruing at expiry.", rental.Device.Name, rental.ExpiresAt.UTC().Format("2 Jan 2006")),
		CreatedAt: now.UTC(),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// removeExpired runs one rental's terminal unit: capacity decrement,
// then the delete, then the removal notification, in that order. The
// delete is the authoritative done signal; if the row was already gone
// another invocation finished this rental and nothing more is owed. A
// crash between the decrement and the delete leaves the rental
// eligible for reprocessing, where the floor-at-zero clamp keeps the
// second subtraction harmless.
func (service *ServiceSweep) removeExpired(ctx context.Context, rental *models.Rental, now time.Time) (bool, error) {
	if rental.Device == nil {
		return false, fmt.Errorf("rental %s has no device", rental.ID)
	}

	err := service.store.DecrementComputingPower(ctx, rental.UserID, rental.Device.Power)
	if err != nil {
		return false, err
	}

	deleted, err := service.store.DeleteRental(ctx, rental.ID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	err = service.store.InsertNotification(ctx, &models.Notification{
		UserID:    rental.UserID,
		Title:     NotificationTitleRemoved(rental.Device.Name),
		Body:      fmt.Sprintf("Your %s rental has ended and the device was returned. %.2f computing power was released.", rental.Device.Name, rental.Device.Power),
		CreatedAt: now.UTC(),
	})
	if err != nil {
		// the rental is gone and capacity is settled; only the message
		// was lost
		return true, err
	}

	return true, nil
}

// LastSummary exposes the most recent sweep result for the debug
// surface.
func (service *ServiceSweep) LastSummary(ctx context.Context) (*models.SweepSummary, error) {
	return redis_store.GetLastSweep(ctx, service.redisDB)
}
