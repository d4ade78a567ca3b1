package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rental links a user to one rented device for a bounded window.
// ExpiresAt nil means the rental never expires and the sweep ignores
// it. Rows only leave the table through the expiry sweep.
type Rental struct {
	bun.BaseModel `bun:"table:rental"`
	ID            string     `bun:"id,pk" json:"id"`
	UserID        int64      `bun:"user_id" json:"user_id"`
	DeviceID      int        `bun:"device_id" json:"device_id"`
	StartedAt     *time.Time `bun:"started_at" json:"started_at"`
	ExpiresAt     *time.Time `bun:"expires_at" json:"expires_at"`
	Active        bool       `bun:"active,default:true" json:"active"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`

	Device *Device `bun:"rel:belongs-to,join:device_id=id" json:"device"`

	Progress         float64 `bun:"-" json:"progress"`
	AccruedReward    float64 `bun:"-" json:"accrued_reward"`
	TotalReward      float64 `bun:"-" json:"total_reward"`
	RemainingSeconds int64   `bun:"-" json:"remaining_seconds"`
}
