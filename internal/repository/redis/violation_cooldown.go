package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	goredis "github.com/redis/go-redis/v9"
)

type violationCooldown struct {
	client goredis.Cmdable
	prefix string
}

// NewViolationCooldown stores violation dedup keys in Redis so every API
// instance shares one cool-down window.
func NewViolationCooldown(client goredis.Cmdable, prefix string) notification.CooldownStore {
	return &violationCooldown{client: client, prefix: prefix}
}

func (c *violationCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.prefix+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire cooldown %s: %w", key, err)
	}
	return ok, nil
}

func (c *violationCooldown) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("release cooldown %s: %w", key, err)
	}
	return nil
}
