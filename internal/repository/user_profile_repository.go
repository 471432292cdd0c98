package repository

import (
	"errors"

	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// UserProfileRepository 顾客资料数据访问接口
type UserProfileRepository interface {
	GetByAccountID(accountID uint) (*models.UserProfile, error)
	Create(profile *models.UserProfile) error
	Update(profile *models.UserProfile) error
	WithTx(tx *gorm.DB) *GormUserProfileRepository
}

// GormUserProfileRepository GORM 实现
type GormUserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository 创建顾客资料仓库
func NewUserProfileRepository(db *gorm.DB) *GormUserProfileRepository {
	return &GormUserProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserProfileRepository) WithTx(tx *gorm.DB) *GormUserProfileRepository {
	if tx == nil {
		return r
	}
	return &GormUserProfileRepository{db: tx}
}

// GetByAccountID 根据账号获取资料
func (r *GormUserProfileRepository) GetByAccountID(accountID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create 创建资料
func (r *GormUserProfileRepository) Create(profile *models.UserProfile) error {
	return r.db.Omit("Account").Create(profile).Error
}

// Update 更新资料
func (r *GormUserProfileRepository) Update(profile *models.UserProfile) error {
	return r.db.Omit("Account").Save(profile).Error
}
