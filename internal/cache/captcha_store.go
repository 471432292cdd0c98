package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/foodhub-next/internal/logger"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

// CaptchaStore 基于 Redis 的图片验证码存储
type CaptchaStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ base64Captcha.Store = (*CaptchaStore)(nil)

// NewCaptchaStore 创建验证码存储
func NewCaptchaStore(client *redis.Client, prefix string, ttl time.Duration) *CaptchaStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &CaptchaStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *CaptchaStore) key(id string) string {
	return joinKey(s.prefix, "captcha:"+strings.TrimSpace(id))
}

// Set 保存验证码答案
func (s *CaptchaStore) Set(id string, value string) error {
	if s.client == nil {
		return ErrStoreUnavailable
	}
	return s.client.Set(context.Background(), s.key(id), value, s.ttl).Err()
}

// Get 读取验证码答案
func (s *CaptchaStore) Get(id string, clear bool) string {
	if s.client == nil {
		return ""
	}
	ctx := context.Background()
	var (
		value string
		err   error
	)
	if clear {
		value, err = s.client.GetDel(ctx, s.key(id)).Result()
	} else {
		value, err = s.client.Get(ctx, s.key(id)).Result()
	}
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warnw("captcha_store_get_failed", "captcha_id", id, "error", err)
		}
		return ""
	}
	return value
}

// Verify 校验验证码答案（忽略大小写）
func (s *CaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := s.Get(id, clear)
	if stored == "" {
		return false
	}
	return strings.EqualFold(stored, strings.TrimSpace(answer))
}
