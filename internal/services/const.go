package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSweepLocked = errors.New("sweep already running")
var ErrRentalLocked = errors.New("rental creation locked")
var ErrDeviceInactive = errors.New("device not available")

const (
	CONFIG_SERVER_MODE         = "SERVER_MODE"
	CONFIG_CRONJOB_TIME_SWEEP  = "CRONJOB_TIME_SWEEP"
	CONFIG_SWEEP_WORKERS       = "SWEEP_WORKERS"
	CONFIG_EXPIRY_WARNING_DAYS = "EXPIRY_WARNING_DAYS"
	CONFIG_NOTIFY_DEDUP_HOURS  = "NOTIFY_DEDUP_HOURS"

	DEFAULT_SWEEP_WORKERS       = 8
	DEFAULT_EXPIRY_WARNING_DAYS = 7
	DEFAULT_NOTIFY_DEDUP_HOURS  = 24

	NOTIFICATION_PAGE_LIMIT = 20

	SWEEP_TRIGGER_RATE_LIMIT_PER_MINUTE = 6

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
	CACHE_TTL_15_MINS   = 15 * time.Minute
	CACHE_TTL_1_HOUR    = 1 * time.Hour
)

func LockKeySweep() string {
	return "lock:sweep"
}

func LockKeyUserRental(userID int64) string {
	return fmt.Sprintf("lock:user-rental:%d", userID)
}

// db
func DBKeyDevices() string {
	return "devices:active"
}

func DBKeyDevice(slug string) string {
	return fmt.Sprintf("device:%s", strings.ToLower(slug))
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyUserUnreadCount(userID int64) string {
	return fmt.Sprintf("user:%d:unread_count", userID)
}

func LimitKeySweepTrigger() string {
	return "limit:sweep-trigger"
}
