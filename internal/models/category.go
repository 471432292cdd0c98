package models

import "time"

// Category 菜品分类表（按餐厅隔离，名称在餐厅内唯一）
type Category struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                            // 主键
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_category_restaurant_name" json:"restaurant_id"`          // 餐厅ID
	Name         string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_category_restaurant_name" json:"name"` // 分类名称
	Description  string    `gorm:"type:varchar(500);default:''" json:"description"`                                 // 描述
	SortOrder    int       `gorm:"default:0;index" json:"sort_order"`                                               // 排序权重
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                                         // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                                      // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
