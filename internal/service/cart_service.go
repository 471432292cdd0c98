package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"
)

const defaultMaxLineQuantity = 99

// CartService 购物车服务，购物车整体驻留在 Redis 中
type CartService struct {
	store           *cache.CartStore
	dishRepo        repository.DishRepository
	maxLineQuantity int
}

// NewCartService 创建购物车服务
func NewCartService(store *cache.CartStore, dishRepo repository.DishRepository, maxLineQuantity int) *CartService {
	if maxLineQuantity <= 0 {
		maxLineQuantity = defaultMaxLineQuantity
	}
	return &CartService{
		store:           store,
		dishRepo:        dishRepo,
		maxLineQuantity: maxLineQuantity,
	}
}

// GetCart 获取购物车，不存在时创建空车
func (s *CartService) GetCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	cart, err := s.store.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	return cart, nil
}

// AddLine 加入菜品，已存在时累加数量并刷新快照
func (s *CartService) AddLine(ctx context.Context, customerID, dishID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	dish, err := s.dishRepo.GetByID(dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}
	if !dish.IsAvailable {
		return nil, ErrDishUnavailable
	}

	cart, err := s.store.Mutate(ctx, customerID, func(cart *models.Cart) (bool, error) {
		if restaurantID := cart.RestaurantID(); restaurantID != 0 && restaurantID != dish.RestaurantID {
			return false, ErrCartRestaurantMismatch
		}
		line := snapshotLine(dish)
		if idx := cart.FindLine(dish.ID); idx >= 0 {
			line.Quantity = cart.Items[idx].Quantity + quantity
			if line.Quantity > s.maxLineQuantity {
				return false, ErrQuantityExceeded
			}
			cart.Items[idx] = line
			return true, nil
		}
		if quantity > s.maxLineQuantity {
			return false, ErrQuantityExceeded
		}
		line.Quantity = quantity
		cart.Items = append(cart.Items, line)
		return true, nil
	})
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	return cart, nil
}

// UpdateLineQuantity 覆盖某行数量，价格快照保持不变
func (s *CartService) UpdateLineQuantity(ctx context.Context, customerID, dishID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quantity > s.maxLineQuantity {
		return nil, ErrQuantityExceeded
	}
	cart, err := s.store.Mutate(ctx, customerID, func(cart *models.Cart) (bool, error) {
		idx := cart.FindLine(dishID)
		if idx < 0 {
			return false, ErrCartItemNotFound
		}
		cart.Items[idx].Quantity = quantity
		return true, nil
	})
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	return cart, nil
}

// RemoveLine 移除菜品，不在购物车中时不做任何修改
func (s *CartService) RemoveLine(ctx context.Context, customerID, dishID uint) (*models.Cart, error) {
	cart, err := s.store.Mutate(ctx, customerID, func(cart *models.Cart) (bool, error) {
		return cart.RemoveLine(dishID), nil
	})
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	return cart, nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, customerID uint) (*models.Cart, error) {
	cart, err := s.store.Reset(ctx, customerID)
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	return cart, nil
}

func snapshotLine(dish *models.Dish) models.CartLine {
	return models.CartLine{
		DishID:       dish.ID,
		RestaurantID: dish.RestaurantID,
		Price:        dish.Price,
		Name:         dish.Name,
		Description:  dish.Description,
		Thumbnail:    dish.Thumbnail,
		CategoryName: dish.CategoryName(),
	}
}

func mapCartStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, cache.ErrStoreUnavailable) {
		return ErrCartUnavailable
	}
	if isCartDomainError(err) {
		return err
	}
	return fmt.Errorf("cart store: %w", err)
}

func isCartDomainError(err error) bool {
	for _, target := range []error{
		ErrCartRestaurantMismatch,
		ErrCartItemNotFound,
		ErrQuantityExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
