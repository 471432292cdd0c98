package repository

import (
	"errors"
	"strings"

	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// RoleRepository 角色数据访问接口
type RoleRepository interface {
	GetByCode(code string) (*models.Role, error)
	List() ([]models.Role, error)
}

// GormRoleRepository GORM 实现
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// GetByCode 根据编码获取角色
func (r *GormRoleRepository) GetByCode(code string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// List 全部角色
func (r *GormRoleRepository) List() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
