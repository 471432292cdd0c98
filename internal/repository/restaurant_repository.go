package repository

import (
	"errors"

	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	GetByID(id uint) (*models.Restaurant, error)
	GetWithMenu(id uint) (*models.Restaurant, error)
	GetByAccountID(accountID uint) (*models.Restaurant, error)
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormRestaurantRepository
}

// GormRestaurantRepository GORM 实现
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository 创建餐厅仓库
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRestaurantRepository) WithTx(tx *gorm.DB) *GormRestaurantRepository {
	if tx == nil {
		return r
	}
	return &GormRestaurantRepository{db: tx}
}

// GetByID 根据 ID 获取餐厅
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// GetWithMenu 获取餐厅及其分类、菜品
func (r *GormRestaurantRepository) GetWithMenu(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	query := r.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order DESC, id ASC")
		}).
		Preload("Dishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Dishes.Category")
	if err := query.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// GetByAccountID 根据账号获取餐厅
func (r *GormRestaurantRepository) GetByAccountID(accountID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Where("account_id = ?", accountID).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// List 餐厅列表
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	query := r.db.Model(&models.Restaurant{})
	query = applyKeyword(query, filter.Keyword, "name", "description", "address")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var restaurants []models.Restaurant
	if err := query.Order("id DESC").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// Create 创建餐厅
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Omit("Account", "Categories", "Dishes").Create(restaurant).Error
}

// Update 更新餐厅
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Omit("Account", "Categories", "Dishes").Save(restaurant).Error
}

// Delete 删除餐厅（软删除），同时下架其菜品
func (r *GormRestaurantRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Dish{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Restaurant{}, id).Error
	})
}
