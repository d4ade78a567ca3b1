package models

import "time"

// SweepSummary is the result of one expiry sweep invocation. It is
// returned by the cron trigger endpoint and cached in redis for the
// debug surface.
type SweepSummary struct {
	Success          bool      `json:"success"`
	ExpiringNotified int       `json:"expiringNotified"`
	ExpiredRemoved   int       `json:"expiredRemoved"`
	Skipped          bool      `json:"skipped,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
