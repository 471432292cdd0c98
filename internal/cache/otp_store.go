package cache

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrOTPNotFound        = errors.New("otp not found or expired")
	ErrOTPInvalid         = errors.New("otp invalid")
	ErrOTPTooManyAttempts = errors.New("otp too many attempts")
	ErrOTPTooFrequent     = errors.New("otp requested too frequently")
)

const (
	otpFieldCode     = "code"
	otpFieldAttempts = "attempts"
	otpFieldSentAt   = "sent_at"
	otpFieldVerified = "verified"
)

// OTPStore 一次性验证码存储（Redis Hash + TTL）
type OTPStore struct {
	client       *redis.Client
	prefix       string
	ttl          time.Duration
	sendInterval time.Duration
	maxAttempts  int
}

// NewOTPStore 创建验证码存储
func NewOTPStore(client *redis.Client, prefix string, ttl, sendInterval time.Duration, maxAttempts int) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &OTPStore{
		client:       client,
		prefix:       prefix,
		ttl:          ttl,
		sendInterval: sendInterval,
		maxAttempts:  maxAttempts,
	}
}

// TTL 返回验证码有效期
func (s *OTPStore) TTL() time.Duration {
	return s.ttl
}

func (s *OTPStore) key(purpose, email string) string {
	return joinKey(s.prefix, fmt.Sprintf("otp:%s:%s", purpose, strings.ToLower(strings.TrimSpace(email))))
}

// Issue 写入新验证码，发送间隔内重复请求返回 ErrOTPTooFrequent
func (s *OTPStore) Issue(ctx context.Context, purpose, email, code string) error {
	if s == nil || s.client == nil {
		return ErrStoreUnavailable
	}
	key := s.key(purpose, email)
	now := time.Now()
	if s.sendInterval > 0 {
		sentAtRaw, err := s.client.HGet(ctx, key, otpFieldSentAt).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if sentAtRaw != "" {
			sentAt, parseErr := strconv.ParseInt(sentAtRaw, 10, 64)
			if parseErr == nil && now.Sub(time.Unix(sentAt, 0)) < s.sendInterval {
				return ErrOTPTooFrequent
			}
		}
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			otpFieldCode, code,
			otpFieldAttempts, 0,
			otpFieldSentAt, now.Unix(),
			otpFieldVerified, 0,
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

// Verify 校验验证码，失败会累计尝试次数
func (s *OTPStore) Verify(ctx context.Context, purpose, email, code string) error {
	if s == nil || s.client == nil {
		return ErrStoreUnavailable
	}
	key := s.key(purpose, email)
	values, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return err
	}
	stored, ok := values[otpFieldCode]
	if !ok || stored == "" {
		return ErrOTPNotFound
	}
	attempts, _ := strconv.Atoi(values[otpFieldAttempts])
	if attempts >= s.maxAttempts {
		return ErrOTPTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) != 1 {
		if err := s.client.HIncrBy(ctx, key, otpFieldAttempts, 1).Err(); err != nil {
			return err
		}
		return ErrOTPInvalid
	}
	return s.client.HSet(ctx, key, otpFieldVerified, 1).Err()
}

// Consume 校验并删除验证码
func (s *OTPStore) Consume(ctx context.Context, purpose, email, code string) error {
	if err := s.Verify(ctx, purpose, email, code); err != nil {
		return err
	}
	return s.client.Del(ctx, s.key(purpose, email)).Err()
}
