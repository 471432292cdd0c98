package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 普通通知邮件
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 验证码等时效性邮件
	CriticalQueue = constants.QueueCritical

	defaultConcurrency  = 10
	defaultMaxRetry     = 5
	otpMaxRetry         = 2
	otpTaskTimeout      = 2 * time.Minute
	orderStatusTaskTTL  = 24 * time.Hour
	workerShutdownGrace = 8 * time.Second
)

// Client asynq 客户端，未启用时所有投递均为空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

// Enabled 是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(build func() (*asynq.Task, error), opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := build()
	if err != nil {
		return err
	}
	info, err := c.client.Enqueue(task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debugw("queue_task_deduplicated", "type", task.Type())
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	logger.Debugw("queue_task_enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

// EnqueueOrderStatusEmail 订单状态邮件；同一订单同一状态只投递一次
func (c *Client) EnqueueOrderStatusEmail(payload OrderStatusEmailPayload, opts ...asynq.Option) error {
	options := []asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.TaskID(orderStatusTaskID(payload)),
		asynq.Retention(orderStatusTaskTTL),
	}
	return c.enqueue(func() (*asynq.Task, error) {
		return NewOrderStatusEmailTask(payload)
	}, append(options, opts...)...)
}

// EnqueueOTPEmail 验证码邮件，验证码过期后不再投递
func (c *Client) EnqueueOTPEmail(payload OTPEmailPayload, expireIn time.Duration) error {
	if expireIn <= 0 {
		expireIn = otpTaskTimeout
	}
	return c.enqueue(func() (*asynq.Task, error) {
		return NewOTPEmailTask(payload)
	}, asynq.Queue(CriticalQueue), asynq.MaxRetry(otpMaxRetry), asynq.Deadline(time.Now().Add(expireIn)))
}

// EnqueueWelcomeEmail 注册欢迎邮件
func (c *Client) EnqueueWelcomeEmail(payload WelcomeEmailPayload) error {
	return c.enqueue(func() (*asynq.Task, error) {
		return NewWelcomeEmailTask(payload)
	}, asynq.Queue(DefaultQueue), asynq.MaxRetry(defaultMaxRetry))
}

func orderStatusTaskID(payload OrderStatusEmailPayload) string {
	return fmt.Sprintf("order-status:%d:%s", payload.OrderID, strings.ToLower(strings.TrimSpace(payload.Status)))
}

// BuildServerConfig 生成 worker 端配置，验证码队列优先
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	queues := map[string]int{DefaultQueue: 1, CriticalQueue: 2}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency:     concurrency,
		Queues:          queues,
		ShutdownTimeout: workerShutdownGrace,
		Logger:          logger.SW("component", "asynq"),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warnw("queue_task_failed", "type", task.Type(), "retried", retried, "max_retry", maxRetry, "error", err)
		}),
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
