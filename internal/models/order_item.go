package models

import "time"

// OrderItem 订单项表
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                     // 订单ID
	DishID    uint      `gorm:"index;not null" json:"dish_id"`                      // 菜品ID
	DishName  string    `gorm:"type:varchar(255);not null" json:"dish_name"`        // 菜品名称快照
	Quantity  int       `gorm:"not null" json:"quantity"`                           // 数量
	Price     Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 单价快照
	Note      string    `gorm:"type:varchar(500);default:''" json:"note"`           // 备注
	CreatedAt time.Time `json:"created_at"`                                         // 创建时间

	Dish *Dish `gorm:"foreignKey:DishID" json:"dish,omitempty"` // 关联菜品（含已删除）
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 行小计
func (i OrderItem) Subtotal() Money {
	return i.Price.Times(i.Quantity)
}
