package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/foodhub-next/internal/app"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/logger"

	"github.com/gin-gonic/gin"
)

const banner = "\033[36m\033[1mFoodHub API\033[0m  \033[32mmode=%s\033[0m\n"

func main() {
	rawMode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	mode, err := app.ParseMode(*rawMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf(banner, mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	defer func() { _ = logger.Z().Sync() }()

	release := cfg.Server.Mode == "release"
	if cfg.JWT.WeakSecret() {
		if release {
			log.Fatalw("jwt_secret_weak", "hint", "set JWT_SECRET to a random value of at least 32 bytes")
		}
		log.Warnw("jwt_secret_weak", "hint", "replace the default secret before deploying")
	}
	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.PrepareDatabase(cfg); err != nil {
		log.Fatalw("database_prepare_failed", "driver", cfg.Database.Driver, "error", err)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalw("app_exit", "error", err)
	}
}
