package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Device is one entry of the rentable miner catalog. Power is the
// computing-power contribution counted against the owner while a
// rental of this device is active.
type Device struct {
	bun.BaseModel `bun:"table:device"`
	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	Slug          string    `bun:"slug" json:"slug"`
	Name          string    `bun:"name" json:"name"`
	Power         float64   `bun:"power" json:"power"`
	DailyReward   float64   `bun:"daily_reward" json:"daily_reward"`
	BonusPercent  float64   `bun:"bonus_percent,default:0" json:"bonus_percent"`
	DurationDays  int       `bun:"duration_days" json:"duration_days"`
	Price         float64   `bun:"price" json:"price"`
	Active        bool      `bun:"active,default:true" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
