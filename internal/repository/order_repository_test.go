package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate order models failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrderFixture(t *testing.T, db *gorm.DB) (*models.Account, *models.Restaurant, *models.Dish) {
	t.Helper()
	role := &models.Role{Code: constants.RoleCustomer, Name: "Customer"}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	customer := &models.Account{Email: "c@example.com", PasswordHash: "x", RoleID: role.ID}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	restaurant := &models.Restaurant{AccountID: 99, Name: "Pho 24"}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	dish := &models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Pho Bo",
		Price:        models.NewMoneyFromDecimal(decimal.NewFromInt(50000)),
		IsAvailable:  true,
	}
	if err := db.Create(dish).Error; err != nil {
		t.Fatalf("create dish failed: %v", err)
	}
	return customer, restaurant, dish
}

func TestOrderRepositoryDetailKeepsDeletedDish(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	customer, restaurant, dish := seedOrderFixture(t, db)

	order := &models.Order{
		OrderNo:      "FO-TEST-1",
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		TotalPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
		Status:       constants.OrderStatusPending,
	}
	items := []models.OrderItem{{DishID: dish.ID, DishName: dish.Name, Quantity: 2, Price: dish.Price}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := NewDishRepository(db).Delete(dish.ID); err != nil {
		t.Fatalf("delete dish failed: %v", err)
	}

	detail, err := repo.GetDetail(order.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail == nil || len(detail.Items) != 1 {
		t.Fatalf("expected one order item, got %+v", detail)
	}
	if detail.Items[0].Dish == nil || detail.Items[0].Dish.ID != dish.ID {
		t.Fatalf("deleted dish should still be preloaded on the order item")
	}
	if detail.Customer == nil || detail.Customer.Email != "c@example.com" {
		t.Fatalf("expected customer preloaded")
	}
	if detail.Restaurant == nil || detail.Restaurant.Name != "Pho 24" {
		t.Fatalf("expected restaurant preloaded")
	}
}

func TestOrderRepositoryUpdateStatusRequiresExpectedStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	customer, restaurant, _ := seedOrderFixture(t, db)

	order := &models.Order{
		OrderNo:      "FO-TEST-2",
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		Status:       constants.OrderStatusConfirmed,
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, nil)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated {
		t.Fatalf("status guard should reject stale transition")
	}

	updated, err = repo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, constants.OrderStatusProcessing, nil)
	if err != nil || !updated {
		t.Fatalf("expected transition applied, updated=%v err=%v", updated, err)
	}
	reloaded, _ := repo.GetByID(order.ID)
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("unexpected status: %s", reloaded.Status)
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	customer, restaurant, _ := seedOrderFixture(t, db)

	for i, status := range []string{constants.OrderStatusPending, constants.OrderStatusCompleted, constants.OrderStatusPending} {
		order := &models.Order{
			OrderNo:      fmt.Sprintf("FO-LIST-%d", i),
			CustomerID:   customer.ID,
			RestaurantID: restaurant.ID,
			Status:       status,
		}
		if err := repo.Create(order, nil); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, total, err := repo.List(OrderListFilter{CustomerID: customer.ID, Status: "PENDING", Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 1 {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "FO-LIST-2" {
		t.Fatalf("orders should be newest first, got %s", orders[0].OrderNo)
	}

	_, total, err = repo.List(OrderListFilter{RestaurantID: restaurant.ID + 1})
	if err != nil || total != 0 {
		t.Fatalf("other restaurant should have no orders, total=%d err=%v", total, err)
	}
}
