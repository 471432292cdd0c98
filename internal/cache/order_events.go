package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OrderStatusEvent 订单状态变更事件
type OrderStatusEvent struct {
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	FromStatus string    `json:"from_status"`
	Status     string    `json:"status"`
	ChangedBy  uint      `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}

func orderStatusChannel(orderID uint) string {
	return buildKey(fmt.Sprintf("order:%d:status", orderID))
}

// PublishOrderStatus 发布订单状态事件
func PublishOrderStatus(ctx context.Context, event OrderStatusEvent) error {
	client := Client()
	if client == nil || event.OrderID == 0 {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return client.Publish(ctx, orderStatusChannel(event.OrderID), payload).Err()
}

// SubscribeOrderStatus 订阅订单状态事件，未启用 Redis 时返回 nil
func SubscribeOrderStatus(ctx context.Context, orderID uint) *redis.PubSub {
	client := Client()
	if client == nil || orderID == 0 {
		return nil
	}
	return client.Subscribe(ctx, orderStatusChannel(orderID))
}

// DecodeOrderStatusEvent 解析事件消息
func DecodeOrderStatusEvent(msg *redis.Message) (*OrderStatusEvent, error) {
	var event OrderStatusEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
