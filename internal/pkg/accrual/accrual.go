package accrual

import "time"

// TotalPromised is the full reward a rental pays out over its whole
// window: daily reward times duration, plus the device bonus.
func TotalPromised(dailyReward float64, durationDays int, bonusPercent float64) float64 {
	return dailyReward * float64(durationDays) * (1 + bonusPercent/100)
}

// Progress returns the elapsed fraction of the rental window in [0, 1].
// A missing or inverted window counts as complete, which matches a
// finished rental and keeps the division safe.
func Progress(now time.Time, startedAt, expiresAt *time.Time) float64 {
	if startedAt == nil || expiresAt == nil {
		return 1
	}

	total := expiresAt.Sub(*startedAt)
	if total <= 0 {
		return 1
	}

	elapsed := now.Sub(*startedAt)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 1
	}

	return float64(elapsed) / float64(total)
}

// Accrued is the portion of totalPromised earned at instant now.
// Monotone in now for a fixed window, never negative, frozen at
// totalPromised once the window has passed.
func Accrued(now time.Time, startedAt, expiresAt *time.Time, totalPromised float64) float64 {
	return Progress(now, startedAt, expiresAt) * totalPromised
}
