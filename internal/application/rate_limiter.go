package application

import (
	"sync"
	"time"

	"translation-bot/configs"
	"translation-bot/internal/domain"

	"github.com/sirupsen/logrus"
)

// RateLimiter struct - Application service tracking per-user daily message
// usage against a fixed quota. Records reset lazily the moment they are read
// after their reset instant has passed; no background timer. Check and
// increment are two separate operations with no atomicity across concurrent
// requests from one user, matching the source system: a burst can
// transiently exceed the quota by the number of in-flight requests.
type RateLimiter struct {
	usage      sync.Map // userID -> *domain.UsageRecord
	enabled    bool
	dailyLimit int
	resetHour  int

	// now is the clock; tests inject a fixed time.
	now func() time.Time
}

// RateLimitStatistics struct - Snapshot of limiter state
type RateLimitStatistics struct {
	TotalUsers int  `json:"total_users"`
	DailyLimit int  `json:"daily_limit"`
	Enabled    bool `json:"enabled"`
}

// NewRateLimiter func - Creates new rate limiter from config
func NewRateLimiter(config configs.RateLimit) *RateLimiter {
	logrus.Info("Rate limit manager initialized")
	return &RateLimiter{
		enabled:    config.Enabled,
		dailyLimit: config.DailyMessageLimit,
		resetHour:  config.ResetHour,
		now:        time.Now,
	}
}

// IsExceeded reports whether the user has used up today's quota.
// Always false when rate limiting is disabled.
func (r *RateLimiter) IsExceeded(userID string) bool {
	if !r.enabled {
		return false
	}
	usage := r.getUsage(userID)
	return usage.Count >= r.dailyLimit
}

// Increment consumes one message from the user's quota
func (r *RateLimiter) Increment(userID string) *domain.UsageRecord {
	usage := r.getUsage(userID)
	usage.Count++
	r.usage.Store(userID, usage)

	// Only log when the user approaches the limit (90% or higher)
	if usage.Count*10 >= r.dailyLimit*9 {
		logrus.Infof("User %s approaching limit: %d/%d", userID, usage.Count, r.dailyLimit)
	}
	return usage
}

// Remaining returns how many messages the user has left today, floored at zero
func (r *RateLimiter) Remaining(userID string) int {
	usage := r.getUsage(userID)
	remaining := r.dailyLimit - usage.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TimeUntilReset returns how long until the user's quota window rolls over
func (r *RateLimiter) TimeUntilReset(userID string) time.Duration {
	usage := r.getUsage(userID)
	return usage.ResetTime.Sub(r.now())
}

// Statistics returns a snapshot of limiter state
func (r *RateLimiter) Statistics() RateLimitStatistics {
	total := 0
	r.usage.Range(func(_, _ interface{}) bool {
		total++
		return true
	})
	return RateLimitStatistics{
		TotalUsers: total,
		DailyLimit: r.dailyLimit,
		Enabled:    r.enabled,
	}
}

// getUsage returns the user's usage record, lazily creating it and lazily
// resetting it once the current time reaches or passes its reset instant.
func (r *RateLimiter) getUsage(userID string) *domain.UsageRecord {
	now := r.now()

	if value, ok := r.usage.Load(userID); ok {
		if usage, ok := value.(*domain.UsageRecord); ok && now.Before(usage.ResetTime) {
			return usage
		}
	}

	usage := &domain.UsageRecord{
		Count:     0,
		ResetTime: domain.NextResetTime(now, r.resetHour),
	}
	r.usage.Store(userID, usage)
	return usage
}
