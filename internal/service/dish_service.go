package service

import (
	"strings"

	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"

	"gorm.io/gorm"
)

// DishService 菜品业务服务
type DishService struct {
	repo         repository.DishRepository
	categoryRepo repository.CategoryRepository
	restaurants  *RestaurantService
	categories   *CategoryService
}

// NewDishService 创建菜品服务
func NewDishService(
	repo repository.DishRepository,
	categoryRepo repository.CategoryRepository,
	restaurants *RestaurantService,
	categories *CategoryService,
) *DishService {
	return &DishService{
		repo:         repo,
		categoryRepo: categoryRepo,
		restaurants:  restaurants,
		categories:   categories,
	}
}

// CreateDishInput 创建菜品输入，分类可按 ID 指定或按名称自动创建
type CreateDishInput struct {
	RestaurantID uint
	CategoryID   uint
	CategoryName string
	Name         string
	Description  string
	Price        string
	Thumbnail    string
	IsAvailable  *bool
}

// UpdateDishInput 菜品更新输入，nil 表示不修改
type UpdateDishInput struct {
	CategoryID   *uint
	CategoryName *string
	Name         *string
	Description  *string
	Price        *string
	Thumbnail    *string
	IsAvailable  *bool
}

// List 菜品列表
func (s *DishService) List(filter repository.DishListFilter) ([]models.Dish, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.WithCategory = true
	return s.repo.List(filter)
}

// ListByRestaurant 餐厅下的菜品
func (s *DishService) ListByRestaurant(restaurantID uint, page, pageSize int) ([]models.Dish, int64, error) {
	return s.List(repository.DishListFilter{Page: page, PageSize: pageSize, RestaurantID: restaurantID})
}

// ListByCategory 分类下的菜品
func (s *DishService) ListByCategory(categoryID uint, page, pageSize int) ([]models.Dish, int64, error) {
	if _, err := s.categories.Get(categoryID); err != nil {
		return nil, 0, err
	}
	return s.List(repository.DishListFilter{Page: page, PageSize: pageSize, CategoryID: categoryID})
}

// Get 获取菜品
func (s *DishService) Get(id uint) (*models.Dish, error) {
	dish, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}
	return dish, nil
}

// Create 创建菜品
func (s *DishService) Create(actor Actor, input CreateDishInput) (*models.Dish, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDishNameRequired
	}
	price, err := parseDishPrice(input.Price)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.ResolveManaged(actor, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Price:        price,
		Thumbnail:    strings.TrimSpace(input.Thumbnail),
		IsAvailable:  true,
	}
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		category, err := s.resolveCategory(tx, restaurant.ID, input.CategoryID, input.CategoryName)
		if err != nil {
			return err
		}
		if category != nil {
			dish.CategoryID = &category.ID
			dish.Category = category
		}
		return s.repo.WithTx(tx).Create(dish)
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// Update 更新菜品
func (s *DishService) Update(actor Actor, id uint, input UpdateDishInput) (*models.Dish, error) {
	dish, err := s.loadManaged(actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrDishNameRequired
		}
		dish.Name = name
	}
	if input.Description != nil {
		dish.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		price, err := parseDishPrice(*input.Price)
		if err != nil {
			return nil, err
		}
		dish.Price = price
	}
	if input.Thumbnail != nil {
		dish.Thumbnail = strings.TrimSpace(*input.Thumbnail)
	}
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if input.CategoryID != nil || input.CategoryName != nil {
			var categoryID uint
			var categoryName string
			if input.CategoryID != nil {
				categoryID = *input.CategoryID
			}
			if input.CategoryName != nil {
				categoryName = *input.CategoryName
			}
			category, err := s.resolveCategory(tx, dish.RestaurantID, categoryID, categoryName)
			if err != nil {
				return err
			}
			if category == nil {
				dish.CategoryID = nil
				dish.Category = nil
			} else {
				dish.CategoryID = &category.ID
				dish.Category = category
			}
		}
		return s.repo.WithTx(tx).Update(dish)
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// Delete 删除菜品（软删除），已下单的订单项仍可引用
func (s *DishService) Delete(actor Actor, id uint) error {
	if _, err := s.loadManaged(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *DishService) resolveCategory(tx *gorm.DB, restaurantID, categoryID uint, categoryName string) (*models.Category, error) {
	if categoryID != 0 {
		category, err := s.categoryRepo.WithTx(tx).GetByID(categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		if category.RestaurantID != restaurantID {
			return nil, ErrForbidden
		}
		return category, nil
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, nil
	}
	return s.categories.EnsureByName(tx, restaurantID, categoryName)
}

func (s *DishService) loadManaged(actor Actor, id uint) (*models.Dish, error) {
	dish, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	ok, err := s.restaurants.CanManage(actor, dish.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return dish, nil
}

func parseDishPrice(raw string) (models.Money, error) {
	price, err := models.ParseMoney(raw)
	if err != nil || !price.IsPositive() {
		return models.Money{}, ErrDishPriceInvalid
	}
	return price, nil
}
