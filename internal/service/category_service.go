package service

import (
	"errors"
	"strings"

	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"

	"gorm.io/gorm"
)

// CategoryService 菜品分类服务，分类归属于餐厅
type CategoryService struct {
	repo        repository.CategoryRepository
	restaurants *RestaurantService
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, restaurants *RestaurantService) *CategoryService {
	return &CategoryService{repo: repo, restaurants: restaurants}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	RestaurantID uint
	Name         string
	Description  string
	SortOrder    int
}

// ListByRestaurant 获取餐厅的分类
func (s *CategoryService) ListByRestaurant(restaurantID uint) ([]models.Category, error) {
	return s.repo.ListByRestaurant(restaurantID)
}

// ListManaged 获取操作者可管理餐厅的分类
func (s *CategoryService) ListManaged(actor Actor, restaurantID uint) ([]models.Category, error) {
	restaurant, err := s.restaurants.ResolveManaged(actor, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(restaurant.ID)
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(actor Actor, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	restaurant, err := s.restaurants.ResolveManaged(actor, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	exist, err := s.repo.GetByRestaurantAndName(restaurant.ID, name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryExists
	}
	category := &models.Category{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		SortOrder:    input.SortOrder,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(actor Actor, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.loadManaged(actor, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if name != category.Name {
		exist, err := s.repo.GetByRestaurantAndName(category.RestaurantID, name)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != category.ID {
			return nil, ErrCategoryExists
		}
	}
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.SortOrder = input.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，分类下菜品保留并解除关联
func (s *CategoryService) Delete(actor Actor, id uint) error {
	if _, err := s.loadManaged(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// EnsureByName 在餐厅内按名称查找分类，不存在则创建
func (s *CategoryService) EnsureByName(tx *gorm.DB, restaurantID uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	repo := s.repo.WithTx(tx)
	category, err := repo.GetByRestaurantAndName(restaurantID, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}
	category = &models.Category{RestaurantID: restaurantID, Name: name}
	if err := repo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.GetByRestaurantAndName(restaurantID, name)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) loadManaged(actor Actor, id uint) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	ok, err := s.restaurants.CanManage(actor, category.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return category, nil
}
