package auth

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ThrottleCooldownCapSeconds = 30
	failureWindow              = 15 * time.Minute
)

// Throttle slows down repeated failed logins for the same email.
type Throttle struct {
	Client *redis.Client
}

func NewThrottle(client *redis.Client) *Throttle {
	return &Throttle{Client: client}
}

func failKey(email string) string     { return "login:fail:" + normalizeEmail(email) }
func cooldownKey(email string) string { return "login:cooldown:" + normalizeEmail(email) }

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// WaitSeconds returns how long the caller must wait before trying again, 0 if no cooldown.
func (t *Throttle) WaitSeconds(ctx context.Context, email string) (int, error) {
	ttl, err := t.Client.TTL(ctx, cooldownKey(email)).Result()
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, nil
	}
	return int(math.Ceil(ttl.Seconds())), nil
}

// RecordFailure bumps the failure count and starts a cooldown of min(30, 2^count) seconds.
func (t *Throttle) RecordFailure(ctx context.Context, email string) error {
	count, err := t.Client.Incr(ctx, failKey(email)).Result()
	if err != nil {
		return err
	}

	pipe := t.Client.TxPipeline()
	pipe.Expire(ctx, failKey(email), failureWindow)
	pipe.Set(ctx, cooldownKey(email), count, time.Duration(CooldownSecondsForFailCount(int(count)))*time.Second)
	_, err = pipe.Exec(ctx)
	return err
}

// RecordSuccess clears the failure count and any running cooldown.
func (t *Throttle) RecordSuccess(ctx context.Context, email string) error {
	return t.Client.Del(ctx, failKey(email), cooldownKey(email)).Err()
}

func CooldownSecondsForFailCount(failCount int) int {
	if failCount < 0 {
		failCount = 0
	}
	// 2^5 already exceeds the cap; larger shifts would overflow.
	if failCount >= 5 {
		return ThrottleCooldownCapSeconds
	}
	return 1 << failCount
}
