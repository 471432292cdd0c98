package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	redis     *redis.Client
	cartStore *cache.CartStore
	otpStore  *cache.OTPStore

	accountRepo    *repository.GormAccountRepository
	restaurantRepo *repository.GormRestaurantRepository
	dishRepo       *repository.GormDishRepository
	orderRepo      *repository.GormOrderRepository

	restaurants *RestaurantService
	categories  *CategoryService
	dishes      *DishService
	cart        *CartService
	orders      *OrderService
	auth        *AuthService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.InitDefaultRoles(db); err != nil {
		t.Fatalf("init roles failed: %v", err)
	}
	models.DB = db

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.UseClient(client, "test")
	t.Cleanup(func() {
		cache.UseClient(nil, "")
		_ = client.Close()
	})

	env := &serviceTestEnv{
		db:             db,
		mr:             mr,
		redis:          client,
		cartStore:      cache.NewCartStore(client, "test", 7*24*time.Hour, 0),
		otpStore:       cache.NewOTPStore(client, "test", 5*time.Minute, time.Minute, 3),
		accountRepo:    repository.NewAccountRepository(db),
		restaurantRepo: repository.NewRestaurantRepository(db),
		dishRepo:       repository.NewDishRepository(db),
		orderRepo:      repository.NewOrderRepository(db),
	}
	categoryRepo := repository.NewCategoryRepository(db)
	env.restaurants = NewRestaurantService(env.restaurantRepo)
	env.categories = NewCategoryService(categoryRepo, env.restaurants)
	env.dishes = NewDishService(env.dishRepo, categoryRepo, env.restaurants, env.categories)
	env.cart = NewCartService(env.cartStore, env.dishRepo, 0)
	env.orders = NewOrderService(
		env.orderRepo,
		env.accountRepo,
		env.dishRepo,
		env.restaurantRepo,
		env.restaurants,
		env.cartStore,
		cache.NewLocker(client, "test"),
		nil,
		time.Second,
	)
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 24, RememberMeExpireHours: 720}}
	env.auth = NewAuthService(
		cfg,
		env.accountRepo,
		repository.NewRoleRepository(db),
		repository.NewUserProfileRepository(db),
		env.restaurantRepo,
		env.otpStore,
		NewEmailService(&config.EmailConfig{}),
		nil,
	)
	return env
}

func (e *serviceTestEnv) createAccount(t *testing.T, email, roleCode string) *models.Account {
	t.Helper()
	var role models.Role
	if err := e.db.Where("code = ?", roleCode).First(&role).Error; err != nil {
		t.Fatalf("load role %s failed: %v", roleCode, err)
	}
	account := &models.Account{
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "x",
		RoleID:       role.ID,
		Status:       constants.AccountStatusActive,
	}
	if err := e.db.Create(account).Error; err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	account.Role = &role
	return account
}

func (e *serviceTestEnv) createRestaurant(t *testing.T, owner *models.Account, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{AccountID: owner.ID, Name: name}
	if err := e.db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	return restaurant
}

func (e *serviceTestEnv) createDish(t *testing.T, restaurantID uint, name string, price int64) *models.Dish {
	t.Helper()
	dish := &models.Dish{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        models.NewMoneyFromInt(price),
		IsAvailable:  true,
	}
	if err := e.db.Create(dish).Error; err != nil {
		t.Fatalf("create dish failed: %v", err)
	}
	return dish
}

func actorOf(account *models.Account) Actor {
	return Actor{AccountID: account.ID, Role: account.RoleCode()}
}
