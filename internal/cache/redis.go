package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/foodhub-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix      = "fh"
	startupPingTimeout = 3 * time.Second
)

// backend 当前生效的 Redis 连接与键前缀，整体替换保证读写一致
type backend struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[backend]

// InitRedis 按配置创建客户端并做一次连通性检查
// 检查失败时客户端仍然保留，由调用方决定是否降级
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		current.Store(nil)
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	UseClient(client, cfg.Prefix)

	ctx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	defer cancel()
	return Ping(ctx)
}

// UseClient 注入已创建的客户端，client 为 nil 时关闭缓存
func UseClient(client *redis.Client, prefix string) {
	if client == nil {
		current.Store(nil)
		return
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	current.Store(&backend{client: client, prefix: prefix})
}

func Enabled() bool {
	return current.Load() != nil
}

// Client 未启用时返回 nil
func Client() *redis.Client {
	if b := current.Load(); b != nil {
		return b.client
	}
	return nil
}

func Prefix() string {
	if b := current.Load(); b != nil {
		return b.prefix
	}
	return defaultPrefix
}

func Ping(ctx context.Context) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// Close 关闭连接并停用缓存
func Close() error {
	b := current.Swap(nil)
	if b == nil {
		return nil
	}
	return b.client.Close()
}

// GetJSON 命中时解码到 dest 并返回 true
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, buildKey(key), payload, ttl).Err()
}

func Del(ctx context.Context, key string) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, buildKey(key)).Err()
}

func buildKey(key string) string {
	return joinKey(Prefix(), key)
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}
