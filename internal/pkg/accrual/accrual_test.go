package accrual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func window(start time.Time, d time.Duration) (*time.Time, *time.Time) {
	end := start.Add(d)
	return &start, &end
}

func TestAccruedHalfway(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	startedAt, expiresAt := window(start, 10*24*time.Hour)

	got := Accrued(start.Add(5*24*time.Hour), startedAt, expiresAt, 100)
	require.InDelta(t, 50, got, 1e-9)
}

func TestAccruedBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	startedAt, expiresAt := window(start, 10*24*time.Hour)

	require.Zero(t, Accrued(start.Add(-time.Hour), startedAt, expiresAt, 100))
	require.Zero(t, Accrued(start, startedAt, expiresAt, 100))
}

func TestAccruedAfterExpiry(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	startedAt, expiresAt := window(start, 10*24*time.Hour)

	require.Equal(t, 100.0, Accrued(*expiresAt, startedAt, expiresAt, 100))
	require.Equal(t, 100.0, Accrued(expiresAt.Add(365*24*time.Hour), startedAt, expiresAt, 100))
}

func TestAccruedMonotoneAndBounded(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	startedAt, expiresAt := window(start, 30*24*time.Hour)

	prev := 0.0
	for hour := 1; hour < 30*24; hour++ {
		got := Accrued(start.Add(time.Duration(hour)*time.Hour), startedAt, expiresAt, 100)
		require.Greater(t, got, prev)
		require.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestProgressMissingOrInvertedWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	require.Equal(t, 1.0, Progress(now, nil, &end))
	require.Equal(t, 1.0, Progress(now, &start, nil))
	require.Equal(t, 1.0, Progress(now, nil, nil))

	// inverted window counts as complete, no division by zero
	require.Equal(t, 1.0, Progress(now, &end, &start))
	require.Equal(t, 1.0, Progress(now, &start, &start))
}

func TestTotalPromised(t *testing.T) {
	require.InDelta(t, 330, TotalPromised(10, 30, 10), 1e-9)
	require.InDelta(t, 300, TotalPromised(10, 30, 0), 1e-9)
}
