package app

import (
	"context"
	"errors"
	"strings"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/logger"

	"github.com/robfig/cron"
)

const defaultAuthzReloadSpec = "@every 1m"

// SchedulerService 定时任务服务
// 多实例部署时各实例独立从数据库重新加载 Casbin 策略，使后台授权变更在集群内生效
type SchedulerService struct {
	name  string
	cron  *cron.Cron
	authz *authz.Service
	spec  string
}

// NewSchedulerService 创建定时任务服务
func NewSchedulerService(authzService *authz.Service, reloadSpec string) (*SchedulerService, error) {
	if authzService == nil {
		return nil, errors.New("authz service is nil")
	}
	spec := strings.TrimSpace(reloadSpec)
	if spec == "" {
		spec = defaultAuthzReloadSpec
	}
	if _, err := cron.Parse(spec); err != nil {
		return nil, err
	}
	s := &SchedulerService{
		name:  "scheduler",
		cron:  cron.New(),
		authz: authzService,
		spec:  spec,
	}
	if err := s.cron.AddFunc(spec, s.reloadPolicy); err != nil {
		return nil, err
	}
	return s, nil
}

// Name 服务名称
func (s *SchedulerService) Name() string {
	if s == nil || s.name == "" {
		return "scheduler"
	}
	return s.name
}

// Start 启动定时任务并阻塞至 ctx 结束
func (s *SchedulerService) Start(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return errors.New("scheduler not initialized")
	}
	logger.Infow("scheduler_start", "authz_reload_spec", s.spec)
	s.cron.Start()
	<-ctx.Done()
	return nil
}

// Stop 停止定时任务
func (s *SchedulerService) Stop(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return nil
	}
	s.cron.Stop()
	return nil
}

func (s *SchedulerService) reloadPolicy() {
	if err := s.authz.ReloadPolicy(); err != nil {
		logger.Warnw("scheduler_authz_reload_failed", "error", err)
		return
	}
	logger.Debugw("scheduler_authz_reloaded")
}
