package models

import "time"

// Order 订单表
type Order struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                     // 主键
	OrderNo      string     `gorm:"uniqueIndex;not null" json:"order_no"`                     // 订单编号
	CustomerID   uint       `gorm:"index;not null" json:"customer_id"`                        // 顾客账号ID
	RestaurantID uint       `gorm:"index;not null" json:"restaurant_id"`                      // 餐厅ID（下单时确定，之后不再变更）
	TotalPrice   Money      `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"` // 订单总价
	Status       string     `gorm:"type:varchar(20);index;not null" json:"status"`            // 订单状态
	Note         string     `gorm:"type:varchar(500);default:''" json:"note"`                 // 备注
	CanceledAt   *time.Time `json:"canceled_at"`                                              // 取消时间
	CompletedAt  *time.Time `json:"completed_at"`                                             // 完成时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`                                  // 更新时间

	Customer   *Account    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`     // 顾客
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"` // 餐厅
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`           // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
