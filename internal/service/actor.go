package service

import "github.com/foodhub-next/internal/constants"

// Actor 当前请求的操作者
type Actor struct {
	AccountID uint
	Role      string
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsRestaurant 是否餐厅账号
func (a Actor) IsRestaurant() bool {
	return a.Role == constants.RoleRestaurant
}

// IsCustomer 是否顾客账号
func (a Actor) IsCustomer() bool {
	return a.Role == constants.RoleCustomer
}
