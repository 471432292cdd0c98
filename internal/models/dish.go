package models

import (
	"time"

	"gorm.io/gorm"
)

// Dish 菜品表
type Dish struct {
	ID           uint           `gorm:"primarykey" json:"id"`                               // 主键
	RestaurantID uint           `gorm:"index;not null" json:"restaurant_id"`                // 餐厅ID
	CategoryID   *uint          `gorm:"index" json:"category_id,omitempty"`                 // 分类ID
	Name         string         `gorm:"type:varchar(255);index;not null" json:"name"`       // 菜品名称
	Description  string         `gorm:"type:text" json:"description"`                       // 描述
	Price        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 价格
	Thumbnail    string         `gorm:"type:varchar(500);default:''" json:"thumbnail"`      // 缩略图
	IsAvailable  bool           `gorm:"not null;default:true" json:"is_available"`          // 是否可售
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`     // 分类
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"` // 餐厅
}

// TableName 指定表名
func (Dish) TableName() string {
	return "dishes"
}

// CategoryName 返回分类名称，未关联分类时为空
func (d *Dish) CategoryName() string {
	if d == nil || d.Category == nil {
		return ""
	}
	return d.Category.Name
}
