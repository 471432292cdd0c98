package models

import (
	"errors"
	"strings"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminPassword = "admin123"

var defaultRoles = []Role{
	{Code: constants.RoleCustomer, Name: "Customer", Description: "places orders"},
	{Code: constants.RoleRestaurant, Name: "Restaurant", Description: "manages menu and incoming orders"},
	{Code: constants.RoleAdmin, Name: "Administrator", Description: "full access"},
}

// InitDefaultRoles 确保内置角色存在
func InitDefaultRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		item := role
		if err := db.Where("code = ?", item.Code).FirstOrCreate(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(db *gorm.DB, email, password string) error {
	var adminRole Role
	if err := db.Where("code = ?", constants.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&Account{}).Where("role_id = ?", adminRole.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("bootstrap admin email is empty")
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Account{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
		Status:       constants.AccountStatusActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
