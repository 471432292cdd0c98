package repository

import (
	"errors"
	"strings"

	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	GetByRestaurantAndName(restaurantID uint, name string) (*models.Category, error)
	ListByRestaurant(restaurantID uint) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormCategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByRestaurantAndName 按餐厅与名称获取分类
func (r *GormCategoryRepository) GetByRestaurantAndName(restaurantID uint, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("restaurant_id = ? AND name = ?", restaurantID, strings.TrimSpace(name)).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByRestaurant 餐厅下全部分类
func (r *GormCategoryRepository) ListByRestaurant(restaurantID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("restaurant_id = ?", restaurantID).Order("sort_order DESC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类，原分类下的菜品变为未分类
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Dish{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
