package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/services"
)

// UnlockBus publishes achievement-unlock events to a redis channel. The
// surrounding app (out of scope here) subscribes to drive toasts and
// community-post prompts.
type UnlockBus interface {
	services.UnlockNotifier
	Close() error
}

type unlockBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewUnlockBus(log *logger.Logger) (UnlockBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_UNLOCK_CHANNEL"))
	if ch == "" {
		ch = "achievement.unlocked"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &unlockBus{
		log:     log.With("service", "RedisUnlockBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *unlockBus) NotifyUnlock(ctx context.Context, event services.UnlockEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis unlock bus not initialized")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *unlockBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
