package repository

import (
	"errors"

	"github.com/foodhub-next/internal/models"

	"gorm.io/gorm"
)

// DishRepository 菜品数据访问接口
type DishRepository interface {
	GetByID(id uint) (*models.Dish, error)
	ListByIDs(ids []uint) ([]models.Dish, error)
	List(filter DishListFilter) ([]models.Dish, int64, error)
	Create(dish *models.Dish) error
	Update(dish *models.Dish) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormDishRepository
}

// GormDishRepository GORM 实现
type GormDishRepository struct {
	db *gorm.DB
}

// NewDishRepository 创建菜品仓库
func NewDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDishRepository) WithTx(tx *gorm.DB) *GormDishRepository {
	if tx == nil {
		return r
	}
	return &GormDishRepository{db: tx}
}

// GetByID 根据 ID 获取菜品（含分类）
func (r *GormDishRepository) GetByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.Preload("Category").First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

// ListByIDs 批量获取菜品，已删除的菜品不会返回
func (r *GormDishRepository) ListByIDs(ids []uint) ([]models.Dish, error) {
	if len(ids) == 0 {
		return []models.Dish{}, nil
	}
	var dishes []models.Dish
	if err := r.db.Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// List 菜品列表
func (r *GormDishRepository) List(filter DishListFilter) ([]models.Dish, int64, error) {
	query := r.db.Model(&models.Dish{})

	query = applyKeyword(query, filter.Keyword, "name", "description")
	if filter.RestaurantID != 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCategory {
		query = query.Preload("Category")
	}

	var dishes []models.Dish
	if err := query.Order("id DESC").Find(&dishes).Error; err != nil {
		return nil, 0, err
	}
	return dishes, total, nil
}

// Create 创建菜品
func (r *GormDishRepository) Create(dish *models.Dish) error {
	return r.db.Omit("Category", "Restaurant").Create(dish).Error
}

// Update 更新菜品
func (r *GormDishRepository) Update(dish *models.Dish) error {
	return r.db.Omit("Category", "Restaurant").Save(dish).Error
}

// Delete 删除菜品（软删除，历史订单仍可引用）
func (r *GormDishRepository) Delete(id uint) error {
	return r.db.Delete(&models.Dish{}, id).Error
}
