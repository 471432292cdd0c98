package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// AccountRepository 账号数据访问接口
type AccountRepository interface {
	GetByEmail(email string) (*models.Account, error)
	GetByID(id uint) (*models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	UpdateStatus(id uint, status string) error
	List(filter AccountListFilter) ([]models.Account, int64, error)
	WithTx(tx *gorm.DB) *GormAccountRepository
}

// GormAccountRepository GORM 实现
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAccountRepository) WithTx(tx *gorm.DB) *GormAccountRepository {
	if tx == nil {
		return r
	}
	return &GormAccountRepository{db: tx}
}

// GetByEmail 根据邮箱获取账号
func (r *GormAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Preload("Role").Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByID 根据 ID 获取账号
func (r *GormAccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.Preload("Role").First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create 创建账号
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Omit("Role").Create(account).Error
}

// Update 更新账号
func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Omit("Role").Save(account).Error
}

// UpdateStatus 更新账号状态，禁用时同时吊销已签发 Token
func (r *GormAccountRepository) UpdateStatus(id uint, status string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if strings.ToLower(strings.TrimSpace(status)) == constants.AccountStatusDisabled {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.Account{}).Where("id = ?", id).Updates(updates).Error
}

// List 账号列表
func (r *GormAccountRepository) List(filter AccountListFilter) ([]models.Account, int64, error) {
	query := r.db.Model(&models.Account{})

	query = applyKeyword(query, filter.Keyword, "accounts.email", "accounts.username", "accounts.phone")
	if filter.Role != "" {
		query = query.Joins("JOIN account_roles ON account_roles.id = accounts.role_id").
			Where("account_roles.code = ?", strings.ToUpper(filter.Role))
	}
	if filter.Status != "" {
		query = query.Where("accounts.status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("accounts.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("accounts.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var accounts []models.Account
	if err := query.Preload("Role").Order("accounts.id DESC").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
