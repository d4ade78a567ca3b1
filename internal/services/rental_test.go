package services

import (
	"testing"
	"time"

	"hashfarm/internal/models"

	"github.com/stretchr/testify/require"
)

func TestDecorateProjectsAccrual(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expires := start.AddDate(0, 0, 30)

	rental := &models.Rental{
		ID:        "r1",
		StartedAt: &start,
		ExpiresAt: &expires,
		Device:    &models.Device{Name: "Antminer S9", DailyReward: 1, DurationDays: 30, BonusPercent: 0},
	}

	decorate(rental, start.AddDate(0, 0, 15))
	require.InDelta(t, 0.5, rental.Progress, 1e-9)
	require.InDelta(t, 15, rental.AccruedReward, 1e-9)
	require.InDelta(t, 30, rental.TotalReward, 1e-9)
	require.Equal(t, int64(15*24*60*60), rental.RemainingSeconds)
}

func TestDecorateAfterExpiry(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expires := start.AddDate(0, 0, 30)

	rental := &models.Rental{
		ID:        "r1",
		StartedAt: &start,
		ExpiresAt: &expires,
		Device:    &models.Device{Name: "Antminer S9", DailyReward: 1, DurationDays: 30, BonusPercent: 10},
	}

	decorate(rental, expires.Add(time.Hour))
	require.Equal(t, 1.0, rental.Progress)
	require.InDelta(t, 33, rental.AccruedReward, 1e-9)
	require.Zero(t, rental.RemainingSeconds)
}
