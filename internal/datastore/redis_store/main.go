package redis_store

import (
	"context"
	"time"

	"hashfarm/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const lastSweepTTL = 7 * 24 * time.Hour

func dbKeyLastSweep() string {
	return "sweep:last_summary"
}

func SetLastSweep(ctx context.Context, cmd redis.Cmdable, summary *models.SweepSummary) error {
	encoded, err := msgpack.Marshal(summary)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyLastSweep(), encoded, lastSweepTTL).Err()
}

func GetLastSweep(ctx context.Context, cmd redis.Cmdable) (*models.SweepSummary, error) {
	encoded, err := cmd.Get(ctx, dbKeyLastSweep()).Bytes()
	if err != nil {
		return nil, err
	}

	var summary models.SweepSummary
	err = msgpack.Unmarshal(encoded, &summary)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
