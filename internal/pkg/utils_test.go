package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWarningBucket(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 42, 7, 0, time.UTC)

	from, to := WarningBucket(now, 7)
	require.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2025, 3, 17, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), to)

	// the bucket covers the whole calendar day regardless of the hour
	fromLate, toLate := WarningBucket(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC), 7)
	require.Equal(t, from, fromLate)
	require.Equal(t, to, toLate)
}
