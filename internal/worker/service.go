package worker

import (
	"context"
	"errors"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 邮件任务 worker，作为 app.Service 运行
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建 worker；队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费并阻塞到 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	logger.Infow("worker_started")
	<-ctx.Done()
	return nil
}

// Stop 停止拉取新任务并等待进行中的任务结束
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	logger.Infow("worker_stopped")
	return nil
}
