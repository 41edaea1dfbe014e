package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/geotoll/internal/config"
)

const keyResolveUser = "billing:resolve:user:%s"

// ResolveLimiter throttles check-in traffic per user. A nil limiter
// (rate limiting disabled) allows everything.
type ResolveLimiter struct {
	enabled bool

	bucket *TokenBucket

	userRate  float64
	userBurst int
}

func NewResolveLimiter(cfg config.Config) (*ResolveLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.ResolveUserRate <= 0 || limitCfg.ResolveUserBurst <= 0 {
		return nil, errors.New("resolve user rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &ResolveLimiter{
		enabled:   true,
		bucket:    NewTokenBucket(client),
		userRate:  limitCfg.ResolveUserRate,
		userBurst: limitCfg.ResolveUserBurst,
	}, nil
}

func (l *ResolveLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *ResolveLimiter) AllowUser(ctx context.Context, userID string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyResolveUser, strings.TrimSpace(userID)), l.userRate, l.userBurst)
}
