package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
)

// PrepareDatabase 连接并迁移数据库，然后按配置初始化默认管理员
// release 模式下未配置管理员密码时跳过初始化
func PrepareDatabase(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	sqlLog := logger.NewGormLogger(cfg.Server.Mode, time.Duration(cfg.Database.SlowThresholdMillis)*time.Millisecond)
	pool := cfg.Database.Pool
	db, err := models.Connect(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           pool.MaxOpenConns,
		MaxIdleConns:           pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: pool.ConnMaxIdleTimeSeconds,
	}, sqlLog)
	if err != nil {
		return fmt.Errorf("prepare database: %w", err)
	}

	if cfg.Server.Mode == "release" && cfg.Bootstrap.AdminPassword == "" {
		logger.Warnw("bootstrap_admin_skipped", "reason", "admin password not configured")
		return nil
	}
	if err := models.InitDefaultAdmin(db, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		logger.Warnw("bootstrap_admin_failed", "email", cfg.Bootstrap.AdminEmail, "error", err)
	}
	return nil
}
