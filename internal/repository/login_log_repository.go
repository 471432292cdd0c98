package repository

import (
	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// LoginLogRepository 登录日志数据访问接口
type LoginLogRepository interface {
	Create(entry *models.LoginLog) error
	ListAdmin(filter LoginLogListFilter) ([]models.LoginLog, int64, error)
}

// GormLoginLogRepository GORM 实现
type GormLoginLogRepository struct {
	db *gorm.DB
}

// NewLoginLogRepository 创建登录日志仓库
func NewLoginLogRepository(db *gorm.DB) *GormLoginLogRepository {
	return &GormLoginLogRepository{db: db}
}

func (r *GormLoginLogRepository) Create(entry *models.LoginLog) error {
	if entry == nil {
		return nil
	}
	return r.db.Create(entry).Error
}

// ListAdmin 登录日志只追加不修改，新记录在前
func (r *GormLoginLogRepository) ListAdmin(filter LoginLogListFilter) ([]models.LoginLog, int64, error) {
	query := applyFilters(r.db.Model(&models.LoginLog{}),
		equalIfSet("account_id", filter.AccountID),
		equalIfSet("email", filter.Email),
		equalIfSet("status", filter.Status),
		equalIfSet("fail_reason", filter.FailReason),
		equalIfSet("client_ip", filter.ClientIP),
		createdWithin(filter.CreatedFrom, filter.CreatedTo),
	)
	return findNewestPage[models.LoginLog](query, filter.Page, filter.PageSize)
}
