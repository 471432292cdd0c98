package service

import (
	"strings"

	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"
)

// RestaurantService 餐厅业务服务
type RestaurantService struct {
	repo repository.RestaurantRepository
}

// NewRestaurantService 创建餐厅服务
func NewRestaurantService(repo repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

// UpdateRestaurantInput 餐厅更新输入，nil 表示不修改
type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	ImageURL    *string
}

// List 餐厅列表，关键字匹配名称、简介、地址
func (s *RestaurantService) List(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.repo.List(filter)
}

// GetWithMenu 获取餐厅及菜单
func (s *RestaurantService) GetWithMenu(id uint) (*models.Restaurant, error) {
	restaurant, err := s.repo.GetWithMenu(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

// GetByAccount 获取账号名下餐厅
func (s *RestaurantService) GetByAccount(accountID uint) (*models.Restaurant, error) {
	restaurant, err := s.repo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantRequired
	}
	return restaurant, nil
}

// Update 更新餐厅信息（所属账号或管理员）
func (s *RestaurantService) Update(actor Actor, id uint, input UpdateRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.loadAuthorized(actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrRestaurantNameRequired
		}
		restaurant.Name = name
	}
	if input.Description != nil {
		restaurant.Description = strings.TrimSpace(*input.Description)
	}
	if input.Address != nil {
		restaurant.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		restaurant.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.ImageURL != nil {
		restaurant.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if err := s.repo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete 删除餐厅及其菜单（所属账号或管理员），历史订单保留
func (s *RestaurantService) Delete(actor Actor, id uint) error {
	if _, err := s.loadAuthorized(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// ResolveManaged 解析操作者可管理的餐厅：管理员需显式指定，餐厅账号取自身
func (s *RestaurantService) ResolveManaged(actor Actor, restaurantID uint) (*models.Restaurant, error) {
	if actor.IsAdmin() {
		if restaurantID == 0 {
			return nil, ErrRestaurantRequired
		}
		restaurant, err := s.repo.GetByID(restaurantID)
		if err != nil {
			return nil, err
		}
		if restaurant == nil {
			return nil, ErrRestaurantNotFound
		}
		return restaurant, nil
	}
	if !actor.IsRestaurant() {
		return nil, ErrForbidden
	}
	restaurant, err := s.GetByAccount(actor.AccountID)
	if err != nil {
		return nil, err
	}
	if restaurantID != 0 && restaurantID != restaurant.ID {
		return nil, ErrForbidden
	}
	return restaurant, nil
}

// CanManage 操作者能否管理指定餐厅
func (s *RestaurantService) CanManage(actor Actor, restaurantID uint) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if !actor.IsRestaurant() {
		return false, nil
	}
	restaurant, err := s.repo.GetByAccountID(actor.AccountID)
	if err != nil {
		return false, err
	}
	return restaurant != nil && restaurant.ID == restaurantID, nil
}

func (s *RestaurantService) loadAuthorized(actor Actor, id uint) (*models.Restaurant, error) {
	restaurant, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	if !actor.IsAdmin() && restaurant.AccountID != actor.AccountID {
		return nil, ErrForbidden
	}
	return restaurant, nil
}
