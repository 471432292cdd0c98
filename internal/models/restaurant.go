package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant 餐厅表
type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                          // 主键
	AccountID   uint           `gorm:"uniqueIndex;not null" json:"account_id"`        // 所属账号ID
	Name        string         `gorm:"type:varchar(128);index;not null" json:"name"`  // 餐厅名称
	Description string         `gorm:"type:text" json:"description"`                  // 简介
	Address     string         `gorm:"type:varchar(500);default:''" json:"address"`   // 地址
	Phone       string         `gorm:"type:varchar(32);default:''" json:"phone"`      // 电话
	ImageURL    string         `gorm:"type:varchar(500);default:''" json:"image_url"` // 封面图
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	Account    *Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`       // 关联账号
	Categories []Category `gorm:"foreignKey:RestaurantID" json:"categories,omitempty"` // 菜品分类
	Dishes     []Dish     `gorm:"foreignKey:RestaurantID" json:"dishes,omitempty"`     // 菜品
}

// TableName 指定表名
func (Restaurant) TableName() string {
	return "restaurants"
}
