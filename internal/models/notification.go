package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notification"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Title         string    `bun:"title" json:"title"`
	Body          string    `bun:"body" json:"body"`
	Read          bool      `bun:"read,default:false" json:"read"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
