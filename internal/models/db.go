package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB 进程内共享的数据库连接，由 Connect 赋值
var DB *gorm.DB

// DBPoolConfig 连接池参数，0 表示沿用驱动默认值
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// Connect 打开数据库并设置连接池，随后迁移表结构、写入内置角色
func Connect(driver, dsn string, pool DBPoolConfig, log gormlogger.Interface) (*gorm.DB, error) {
	db, err := OpenDB(driver, dsn, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// OpenDB 仅建立连接，sqlite 使用纯 Go 驱动
func OpenDB(driver, dsn string, log gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "mysql", "mariadb":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	return gorm.Open(dialector, &gorm.Config{Logger: log})
}

// Migrate 迁移全部表并确保内置角色存在，可重复执行
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := InitDefaultRoles(db); err != nil {
		return fmt.Errorf("init default roles: %w", err)
	}
	return nil
}

// AllModels 需要迁移的全部实体，顺序满足外键依赖
func AllModels() []interface{} {
	return []interface{}{
		&Role{},
		&Account{},
		&UserProfile{},
		&Restaurant{},
		&Category{},
		&Dish{},
		&Order{},
		&OrderItem{},
		&LoginLog{},
		&AuthzAuditLog{},
	}
}
