package main

import (
	"time"

	"github.com/foodhub-next/internal/app"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "Foodhub@123"

type seedDish struct {
	Category    string
	Name        string
	Description string
	Price       string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	defer func() { _ = logger.Z().Sync() }()

	if err := app.PrepareDatabase(cfg); err != nil {
		log.Fatalw("seed_database_prepare_failed", "error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalw("seed_hash_password_failed", "error", err)
	}

	// 示例顾客
	customer, err := ensureAccount(models.DB, "customer@foodhub.local", "customer", constants.RoleCustomer, string(hash))
	if err != nil {
		log.Fatalw("seed_customer_failed", "error", err)
	}
	profile := models.UserProfile{AccountID: customer.ID, FullName: "Demo Customer", Address: "12 Nguyen Hue, District 1"}
	if err := models.DB.Where("account_id = ?", customer.ID).FirstOrCreate(&profile).Error; err != nil {
		log.Warnw("seed_customer_profile_failed", "account_id", customer.ID, "error", err)
	}

	// 示例餐厅
	owner, err := ensureAccount(models.DB, "owner@foodhub.local", "owner", constants.RoleRestaurant, string(hash))
	if err != nil {
		log.Fatalw("seed_restaurant_owner_failed", "error", err)
	}
	restaurant := models.Restaurant{
		AccountID:   owner.ID,
		Name:        "Pho Corner",
		Description: "Noodle soups and drinks",
		Address:     "45 Le Loi, District 1",
		Phone:       "0281234567",
	}
	if err := models.DB.Where("account_id = ?", owner.ID).FirstOrCreate(&restaurant).Error; err != nil {
		log.Fatalw("seed_restaurant_failed", "error", err)
	}

	categoryIDs := map[string]uint{}
	for i, name := range []string{"Noodles", "Drinks"} {
		category := models.Category{RestaurantID: restaurant.ID, Name: name, SortOrder: i}
		if err := models.DB.Where("restaurant_id = ? AND name = ?", restaurant.ID, name).FirstOrCreate(&category).Error; err != nil {
			log.Warnw("seed_category_failed", "name", name, "error", err)
			continue
		}
		categoryIDs[name] = category.ID
	}

	dishes := []seedDish{
		{Category: "Noodles", Name: "Beef Pho", Description: "Rice noodles in beef broth", Price: "6.50"},
		{Category: "Noodles", Name: "Chicken Pho", Description: "Rice noodles in chicken broth", Price: "6.00"},
		{Category: "Drinks", Name: "Iced Coffee", Description: "Vietnamese coffee with condensed milk", Price: "2.50"},
	}
	for _, item := range dishes {
		var existing models.Dish
		err := models.DB.Where("restaurant_id = ? AND name = ?", restaurant.ID, item.Name).First(&existing).Error
		if err == nil {
			log.Infow("seed_dish_exists", "name", item.Name)
			continue
		}
		dish := models.Dish{
			RestaurantID: restaurant.ID,
			Name:         item.Name,
			Description:  item.Description,
			Price:        models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
			IsAvailable:  true,
		}
		if id, ok := categoryIDs[item.Category]; ok {
			categoryID := id
			dish.CategoryID = &categoryID
		}
		if err := models.DB.Create(&dish).Error; err != nil {
			log.Warnw("seed_dish_failed", "name", item.Name, "error", err)
			continue
		}
		log.Infow("seed_dish_created", "name", item.Name, "price", dish.Price.String())
	}

	log.Infow("seed_finished", "finished_at", time.Now().Format(time.RFC3339), "demo_password", seedPassword)
}

func ensureAccount(db *gorm.DB, email, username, roleCode, passwordHash string) (*models.Account, error) {
	var role models.Role
	if err := db.Where("code = ?", roleCode).First(&role).Error; err != nil {
		return nil, err
	}
	account := models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       role.ID,
		Status:       constants.AccountStatusActive,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
