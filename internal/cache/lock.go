package cache

import (
	"context"
	"errors"
	"time"

	"github.com/foodhub-next/internal/logger"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLockBusy 锁已被占用
var ErrLockBusy = errors.New("lock busy")

// Locker 基于 redislock 的分布式锁
type Locker struct {
	client *redislock.Client
	prefix string
}

// NewLocker 创建分布式锁
func NewLocker(client *redis.Client, prefix string) *Locker {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Locker{client: redislock.New(client), prefix: prefix}
}

// Obtain 获取锁，返回释放函数
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := joinKey(l.prefix, "lock:"+key)
	lock, err := l.client.Obtain(ctx, fullKey, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 5),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockBusy
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warnw("redis_lock_release_failed", "key", fullKey, "error", err)
		}
	}, nil
}
