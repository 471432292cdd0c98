package app

import (
	"errors"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/provider"
	"github.com/foodhub-next/internal/router"
	"github.com/foodhub-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	parsed, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	opts := Options{Mode: parsed}

	container := provider.NewContainer(cfg)
	runner := NewRunner()

	// HTTP 服务与策略同步任务
	if opts.runsAPI() {
		engine := router.SetupRouter(cfg, container)
		runner.Add(NewHTTPService(cfg.Server.Addr(), engine))

		if cfg.Scheduler.Enabled {
			scheduler, err := NewSchedulerService(container.AuthzService, cfg.Scheduler.AuthzReloadSpec)
			if err != nil {
				return nil, err
			}
			runner.Add(scheduler)
		}
	}

	// 邮件 Worker
	if opts.runsWorker() && cfg.Queue.Enabled {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		runner.Add(workerService)
	}

	if len(runner.services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	defer func() {
		if err := cache.Close(); err != nil {
			opts.Logger.Warnw("redis_close_failed", "error", err)
		}
	}()

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}
