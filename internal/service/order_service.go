package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/queue"
	"github.com/foodhub-next/internal/repository"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

const defaultCheckoutLockTTL = 15 * time.Second

// OrderService 订单服务：购物车下单、查询与状态流转
type OrderService struct {
	orderRepo       repository.OrderRepository
	accountRepo     repository.AccountRepository
	dishRepo        repository.DishRepository
	restaurantRepo  repository.RestaurantRepository
	restaurants     *RestaurantService
	cartStore       *cache.CartStore
	locker          *cache.Locker
	queueClient     *queue.Client
	checkoutLockTTL time.Duration
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	accountRepo repository.AccountRepository,
	dishRepo repository.DishRepository,
	restaurantRepo repository.RestaurantRepository,
	restaurants *RestaurantService,
	cartStore *cache.CartStore,
	locker *cache.Locker,
	queueClient *queue.Client,
	checkoutLockTTL time.Duration,
) *OrderService {
	if checkoutLockTTL <= 0 {
		checkoutLockTTL = defaultCheckoutLockTTL
	}
	return &OrderService{
		orderRepo:       orderRepo,
		accountRepo:     accountRepo,
		dishRepo:        dishRepo,
		restaurantRepo:  restaurantRepo,
		restaurants:     restaurants,
		cartStore:       cartStore,
		locker:          locker,
		queueClient:     queueClient,
		checkoutLockTTL: checkoutLockTTL,
	}
}

// CreateOrderFromCart 将购物车转为订单，成功后从购物车扣除已下单的行；失败时购物车保持不变
func (s *OrderService) CreateOrderFromCart(ctx context.Context, customerID uint, note string) (*models.Order, error) {
	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, fmt.Sprintf("checkout:%d", customerID), s.checkoutLockTTL)
		if err != nil {
			if errors.Is(err, cache.ErrLockBusy) {
				return nil, ErrCheckoutInProgress
			}
			return nil, fmt.Errorf("obtain checkout lock: %w", err)
		}
		defer release()
	}

	cart, hit, err := s.cartStore.Load(ctx, customerID)
	if err != nil {
		return nil, mapCartStoreError(err)
	}
	if !hit || cart.IsEmpty() {
		return nil, ErrCartEmpty
	}
	cart.Recalculate()

	customer, err := s.accountRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	firstDish, err := s.dishRepo.GetByID(cart.Items[0].DishID)
	if err != nil {
		return nil, err
	}
	if firstDish == nil {
		return nil, ErrDishNotFound
	}
	restaurant, err := s.restaurantRepo.GetByID(firstDish.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	order := &models.Order{
		OrderNo:      generateOrderNo(),
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		TotalPrice:   cart.TotalPrice,
		Status:       constants.OrderStatusPending,
		Note:         strings.TrimSpace(note),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		items, err := s.buildOrderItems(s.dishRepo.WithTx(tx), cart, restaurant.ID)
		if err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		logger.Warnw("order_create_from_cart_failed",
			"customer_id", customerID,
			"restaurant_id", restaurant.ID,
			"lines", len(cart.Items),
			"error", err,
		)
		return nil, err
	}

	if _, err := s.cartStore.Consume(ctx, customerID, cart.Items); err != nil {
		logger.Warnw("order_cart_consume_failed", "customer_id", customerID, "order_id", order.ID, "error", err)
	}
	logger.Infow("order_created_from_cart",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", customerID,
		"restaurant_id", restaurant.ID,
		"total_price", order.TotalPrice.String(),
	)
	s.notifyStatusChanged(ctx, order, "", customerID)

	detail, err := s.orderRepo.GetDetail(order.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrOrderNotFound
	}
	return detail, nil
}

func (s *OrderService) buildOrderItems(dishRepo repository.DishRepository, cart *models.Cart, restaurantID uint) ([]models.OrderItem, error) {
	ids := make([]uint, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.DishID)
	}
	dishes, err := dishRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	dishMap := make(map[uint]models.Dish, len(dishes))
	for _, dish := range dishes {
		dishMap[dish.ID] = dish
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		dish, ok := dishMap[line.DishID]
		if !ok {
			return nil, ErrDishNotFound
		}
		if dish.RestaurantID != restaurantID {
			return nil, ErrCartRestaurantMismatch
		}
		name := strings.TrimSpace(line.Name)
		if name == "" {
			name = dish.Name
		}
		items = append(items, models.OrderItem{
			DishID:   line.DishID,
			DishName: name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	return items, nil
}

// GetOrder 获取订单详情：下单顾客、所属餐厅或管理员可见
func (s *OrderService) GetOrder(actor Actor, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	ok, err := s.canView(actor, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListMyOrders 顾客订单列表
func (s *OrderService) ListMyOrders(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.CustomerID = actor.AccountID
	filter.RestaurantID = 0
	return s.list(filter)
}

// ListRestaurantOrders 餐厅订单列表
func (s *OrderService) ListRestaurantOrders(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	restaurant, err := s.restaurants.GetByAccount(actor.AccountID)
	if err != nil {
		return nil, 0, err
	}
	filter.RestaurantID = restaurant.ID
	filter.CustomerID = 0
	return s.list(filter)
}

// ListAllOrders 后台订单列表
func (s *OrderService) ListAllOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.list(filter)
}

func (s *OrderService) list(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = normalizeOrderStatus(filter.Status)
	if filter.Status != "" && !IsValidOrderStatus(filter.Status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	return s.orderRepo.List(filter)
}

// UpdateStatus 推进订单状态，仅所属餐厅或管理员，每次只能前进一步
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Order, error) {
	target := normalizeOrderStatus(status)
	if !IsValidOrderStatus(target) || target == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	ok, err := s.restaurants.CanManage(actor, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if !CanTransitOrderStatus(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if target == constants.OrderStatusCompleted {
		updates["completed_at"] = now
	}
	return s.transit(ctx, actor, order, target, updates, ErrOrderStatusConflict)
}

// CancelOrder 取消订单，仅下单顾客且订单处于待确认
func (s *OrderService) CancelOrder(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.CustomerID != actor.AccountID {
		return nil, ErrForbidden
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderCancelNotAllowed
	}
	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":  now,
		"canceled_at": now,
	}
	return s.transit(ctx, actor, order, constants.OrderStatusCancelled, updates, ErrOrderCancelNotAllowed)
}

func (s *OrderService) transit(ctx context.Context, actor Actor, order *models.Order, target string, updates map[string]interface{}, conflictErr error) (*models.Order, error) {
	from := order.Status
	updated, err := s.orderRepo.UpdateStatus(order.ID, from, target, updates)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, conflictErr
	}
	order.Status = target
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"from_status", from,
		"to_status", target,
		"operator_id", actor.AccountID,
		"operator_role", actor.Role,
	)
	s.notifyStatusChanged(ctx, order, from, actor.AccountID)

	detail, err := s.orderRepo.GetDetail(order.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrOrderNotFound
	}
	return detail, nil
}

func (s *OrderService) canView(actor Actor, order *models.Order) (bool, error) {
	if actor.IsAdmin() || order.CustomerID == actor.AccountID {
		return true, nil
	}
	return s.restaurants.CanManage(actor, order.RestaurantID)
}

// CanWatch 判断操作者能否订阅订单状态
func (s *OrderService) CanWatch(actor Actor, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	ok, err := s.canView(actor, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return order, nil
}

// Snapshot 重新读取订单当前状态，订阅建立后调用以覆盖订阅前发生的变更
func (s *OrderService) Snapshot(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) notifyStatusChanged(ctx context.Context, order *models.Order, from string, operatorID uint) {
	event := cache.OrderStatusEvent{
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		FromStatus: from,
		Status:     order.Status,
		ChangedBy:  operatorID,
		ChangedAt:  time.Now(),
	}
	if err := cache.PublishOrderStatus(ctx, event); err != nil {
		logger.Warnw("order_status_publish_failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
}

func generateOrderNo() string {
	return constants.OrderNoPrefix + strings.ToUpper(xid.New().String())
}
