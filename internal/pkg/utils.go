package pkg

import "time"

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// WarningBucket is the calendar day exactly `days` ahead of now. A
// rental expiring inside that single day is "expiring soon"; this is a
// 24-hour bucket, not a rolling cutoff.
func WarningBucket(now time.Time, days int) (time.Time, time.Time) {
	day := now.UTC().Add(time.Duration(days) * 24 * time.Hour)
	return StartOfDay(day), EndOfDay(day)
}
