package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultCartTTL        = 7 * 24 * time.Hour
	defaultCartCASRetries = 8
	cartCASRetryDelay     = 10 * time.Millisecond
)

// ErrStoreUnavailable 未配置 Redis 时缓存存储不可用
var ErrStoreUnavailable = errors.New("redis store unavailable")

// CartMutator 在 CAS 事务内修改购物车，返回 false 表示无需写回
type CartMutator func(cart *models.Cart) (bool, error)

// CartStore 购物车缓存，整车 JSON 存储，每次写入刷新 TTL
type CartStore struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	maxRetries uint
}

// NewCartStore 创建购物车缓存
func NewCartStore(client *redis.Client, prefix string, ttl time.Duration, maxRetries int) *CartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	if maxRetries <= 0 {
		maxRetries = defaultCartCASRetries
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &CartStore{
		client:     client,
		prefix:     prefix,
		ttl:        ttl,
		maxRetries: uint(maxRetries),
	}
}

// TTL 返回购物车过期时间
func (s *CartStore) TTL() time.Duration {
	return s.ttl
}

func (s *CartStore) key(userID uint) string {
	return joinKey(s.prefix, fmt.Sprintf("cart:%d", userID))
}

// Load 读取购物车，未命中返回 false
func (s *CartStore) Load(ctx context.Context, userID uint) (*models.Cart, bool, error) {
	if s == nil || s.client == nil {
		return nil, false, ErrStoreUnavailable
	}
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	cart, err := decodeCart(raw, userID)
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// GetOrCreate 读取购物车，不存在时写入一个空购物车
func (s *CartStore) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, hit, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hit {
		return cart, nil
	}

	cart = models.NewCart(uuid.NewString(), userID)
	cart.Recalculate()
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, err
	}
	created, err := s.client.SetNX(ctx, s.key(userID), payload, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if created {
		return cart, nil
	}
	// 并发请求已先写入
	existing, hit, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hit {
		return existing, nil
	}
	return cart, nil
}

// Mutate 以 WATCH/MULTI/EXEC 乐观锁修改购物车，冲突时重试
func (s *CartStore) Mutate(ctx context.Context, userID uint, mutate CartMutator) (*models.Cart, error) {
	if s == nil || s.client == nil {
		return nil, ErrStoreUnavailable
	}
	key := s.key(userID)
	var (
		result    *models.Cart
		mutateErr error
	)

	txFn := func(tx *redis.Tx) error {
		cart, err := s.readForUpdate(ctx, tx, key, userID)
		if err != nil {
			return err
		}
		changed, err := mutate(cart)
		if err != nil {
			mutateErr = err
			return err
		}
		if !changed {
			result = cart
			return nil
		}
		cart.Recalculate()
		cart.UpdatedAt = time.Now()
		payload, err := json.Marshal(cart)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	err := retry.Do(
		func() error {
			return s.client.Watch(ctx, txFn, key)
		},
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool { // 只针对 CAS 冲突重试
			return errors.Is(err, redis.TxFailedErr)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debugw("cart_cas_conflict_retry", "user_id", userID, "attempt", n+1)
		}),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(cartCASRetryDelay),
		retry.Attempts(s.maxRetries),
		retry.LastErrorOnly(true),
	)
	if mutateErr != nil {
		return nil, mutateErr
	}
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			logger.Warnw("cart_cas_retry_exhausted", "user_id", userID, "attempts", s.maxRetries)
		}
		return nil, err
	}
	return result, nil
}

// Reset 用新的空购物车覆盖
func (s *CartStore) Reset(ctx context.Context, userID uint) (*models.Cart, error) {
	if s == nil || s.client == nil {
		return nil, ErrStoreUnavailable
	}
	cart := models.NewCart(uuid.NewString(), userID)
	cart.Recalculate()
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, s.key(userID), payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

// Consume 在 CAS 事务内扣除已下单的行与数量，下单后并发加入的商品保留在购物车中
// 扣空后更换 CartID，与 Reset 得到的新购物车一致
func (s *CartStore) Consume(ctx context.Context, userID uint, ordered []models.CartLine) (*models.Cart, error) {
	return s.Mutate(ctx, userID, func(cart *models.Cart) (bool, error) {
		changed := false
		for _, line := range ordered {
			idx := cart.FindLine(line.DishID)
			if idx < 0 {
				continue
			}
			changed = true
			cart.Items[idx].Quantity -= line.Quantity
			if cart.Items[idx].Quantity <= 0 {
				cart.RemoveLine(line.DishID)
			}
		}
		if changed && cart.IsEmpty() {
			cart.CartID = uuid.NewString()
		}
		return changed, nil
	})
}

func (s *CartStore) readForUpdate(ctx context.Context, tx *redis.Tx, key string, userID uint) (*models.Cart, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(uuid.NewString(), userID), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCart(raw, userID)
}

func decodeCart(raw []byte, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decode cart failed: %w", err)
	}
	if cart.UserID == 0 {
		cart.UserID = userID
	}
	if cart.CartID == "" {
		cart.CartID = uuid.NewString()
	}
	// 读取后重算，不信任缓存中的合计
	cart.Recalculate()
	return &cart, nil
}
