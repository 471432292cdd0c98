package repository

import (
	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 策略变更与账号状态变更的审计记录
type AuthzAuditLogRepository interface {
	Create(entry *models.AuthzAuditLog) error
	ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
}

type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

func (r *GormAuthzAuditLogRepository) Create(entry *models.AuthzAuditLog) error {
	if entry == nil {
		return nil
	}
	return r.db.Create(entry).Error
}

// ListAdmin 按操作人、目标账号、动作、角色与时间范围过滤
func (r *GormAuthzAuditLogRepository) ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	query := applyFilters(r.db.Model(&models.AuthzAuditLog{}),
		equalIfSet("operator_id", filter.OperatorID),
		equalIfSet("target_account_id", filter.TargetAccountID),
		equalIfSet("action", filter.Action),
		equalIfSet("role", filter.Role),
		createdWithin(filter.CreatedFrom, filter.CreatedTo),
	)
	return findNewestPage[models.AuthzAuditLog](query, filter.Page, filter.PageSize)
}
