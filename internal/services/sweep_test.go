package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hashfarm/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeSweepStore struct {
	mu            sync.Mutex
	rentals       map[string]*models.Rental
	power         map[int64]float64
	notifications []*models.Notification

	listErr   error
	deleteErr map[string]error
}

func newFakeSweepStore() *fakeSweepStore {
	return &fakeSweepStore{
		rentals:   map[string]*models.Rental{},
		power:     map[int64]float64{},
		deleteErr: map[string]error{},
	}
}

func (s *fakeSweepStore) RentalsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []*models.Rental
	for _, r := range s.rentals {
		if r.ExpiresAt == nil {
			continue
		}
		if !r.ExpiresAt.Before(from) && !r.ExpiresAt.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSweepStore) ExpiredRentals(ctx context.Context, now time.Time) ([]*models.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []*models.Rental
	for _, r := range s.rentals {
		if r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSweepStore) DeleteRental(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deleteErr[id]; err != nil {
		return false, err
	}

	_, ok := s.rentals[id]
	delete(s.rentals, id)
	return ok, nil
}

func (s *fakeSweepStore) DecrementComputingPower(ctx context.Context, userID int64, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.power[userID] - delta
	if next < 0 {
		next = 0
	}
	s.power[userID] = next
	return nil
}

func (s *fakeSweepStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *n
	s.notifications = append(s.notifications, &copied)
	return nil
}

func (s *fakeSweepStore) NotificationExistsSince(ctx context.Context, userID int64, title string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID == userID && n.Title == title && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeSweepStore) notificationsTitled(title string) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Notification
	for _, n := range s.notifications {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

func addRental(s *fakeSweepStore, id string, userID int64, device *models.Device, startedAt, expiresAt time.Time) {
	s.rentals[id] = &models.Rental{
		ID:        id,
		UserID:    userID,
		DeviceID:  device.ID,
		StartedAt: &startedAt,
		ExpiresAt: &expiresAt,
		Active:    true,
		Device:    device,
	}
}

var testDevice = &models.Device{ID: 1, Slug: "antminer-s9", Name: "Antminer S9", Power: 5, DailyReward: 1, DurationDays: 30}

func testSweep(t *testing.T, store *fakeSweepStore, now time.Time) (*models.SweepSummary, error) {
	t.Helper()
	service := &ServiceSweep{store: store}
	return service.sweep(context.Background(), now, DEFAULT_EXPIRY_WARNING_DAYS, time.Duration(DEFAULT_NOTIFY_DEDUP_HOURS)*time.Hour, 4)
}

func TestSweepWarnsInsideSevenDayBucket(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	// expiry lands on the calendar day exactly 7 days ahead
	addRental(store, "r1", 10, testDevice, now.AddDate(0, 0, -23), time.Date(2025, 3, 17, 14, 0, 0, 0, time.UTC))
	store.power[10] = 5

	summary, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ExpiringNotified)
	require.Equal(t, 0, summary.ExpiredRemoved)
	require.Len(t, store.notificationsTitled(NotificationTitleExpiring(testDevice.Name)), 1)

	// a second run within the dedup window adds nothing
	summary, err = testSweep(t, store, now.Add(30*time.Minute))
	require.NoError(t, err)
	require.Equal(t, 0, summary.ExpiringNotified)
	require.Len(t, store.notificationsTitled(NotificationTitleExpiring(testDevice.Name)), 1)
}

func TestSweepIgnoresRentalsOutsideBucket(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	// 6 days out and 8 days out both miss the single-day bucket
	addRental(store, "r1", 10, testDevice, now.AddDate(0, 0, -10), now.AddDate(0, 0, 6))
	addRental(store, "r2", 10, testDevice, now.AddDate(0, 0, -10), now.AddDate(0, 0, 8))

	summary, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 0, summary.ExpiringNotified)
	require.Empty(t, store.notifications)
}

func TestSweepRemovesExpiredRental(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	addRental(store, "r1", 10, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Second))
	store.power[10] = 5

	summary, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ExpiredRemoved)
	require.Empty(t, store.rentals)
	require.Equal(t, 0.0, store.power[10])
	require.Len(t, store.notificationsTitled(NotificationTitleRemoved(testDevice.Name)), 1)
}

func TestSweepClampsStaleCapacityAtZero(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	addRental(store, "r1", 10, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Minute))
	store.power[10] = 0 // already inconsistent

	summary, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ExpiredRemoved)
	require.Equal(t, 0.0, store.power[10])
}

func TestSweepIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	addRental(store, "warn", 10, testDevice, now.AddDate(0, 0, -23), time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC))
	addRental(store, "gone", 11, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Hour))
	store.power[10] = 5
	store.power[11] = 5

	first, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 1, first.ExpiringNotified)
	require.Equal(t, 1, first.ExpiredRemoved)

	second, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 0, second.ExpiringNotified)
	require.Equal(t, 0, second.ExpiredRemoved)
	require.Equal(t, 0.0, store.power[11])
	require.Len(t, store.notifications, 2)
}

func TestSweepSkipsFailedRentalAndContinues(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	addRental(store, "bad", 10, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Hour))
	addRental(store, "good", 11, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Hour))
	store.power[10] = 5
	store.power[11] = 5
	store.deleteErr["bad"] = errors.New("deadlock detected")

	summary, err := testSweep(t, store, now)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ExpiredRemoved)
	require.Contains(t, store.rentals, "bad")
	require.NotContains(t, store.rentals, "good")

	// the failed rental stays eligible and succeeds next run
	store.deleteErr = map[string]error{}
	summary, err = testSweep(t, store, now.Add(5*time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, summary.ExpiredRemoved)
	require.Empty(t, store.rentals)
	// the retry decremented again, but the clamp kept it at zero
	require.Equal(t, 0.0, store.power[10])
}

func TestSweepAbortsWhenListingFails(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	addRental(store, "r1", 10, testDevice, now.AddDate(0, 0, -30), now.Add(-time.Hour))
	store.power[10] = 5
	store.listErr = errors.New("store unavailable")

	_, err := testSweep(t, store, now)
	require.Error(t, err)
	require.Contains(t, store.rentals, "r1")
	require.Equal(t, 5.0, store.power[10])
	require.Empty(t, store.notifications)
}

func TestSweepSkipsRemovalNotificationWhenRowAlreadyGone(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore()

	rental := &models.Rental{ID: "ghost", UserID: 10, Device: testDevice}
	service := &ServiceSweep{store: store}

	done, err := service.removeExpired(context.Background(), rental, now)
	require.NoError(t, err)
	require.False(t, done)
	require.Empty(t, store.notifications)
}
