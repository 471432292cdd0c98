package models

import (
	"time"
)

// CartLine 购物车行（缓存驻留，价格为加入时快照）
type CartLine struct {
	DishID       uint   `json:"dish_id"`
	RestaurantID uint   `json:"restaurant_id"`
	Quantity     int    `json:"quantity"`
	Price        Money  `json:"price"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// Subtotal 行小计
func (l CartLine) Subtotal() Money {
	return l.Price.Times(l.Quantity)
}

// Cart 顾客购物车（缓存驻留，每个顾客一份）
type Cart struct {
	CartID     string     `json:"cart_id"`
	UserID     uint       `json:"user_id"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice Money      `json:"total_price"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCart 创建空购物车
func NewCart(cartID string, userID uint) *Cart {
	return &Cart{
		CartID:     cartID,
		UserID:     userID,
		Items:      []CartLine{},
		TotalPrice: ZeroMoney(),
		UpdatedAt:  time.Now(),
	}
}

// IsEmpty 是否没有任何行
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// FindLine 返回指定菜品所在行下标，不存在返回 -1
func (c *Cart) FindLine(dishID uint) int {
	for idx := range c.Items {
		if c.Items[idx].DishID == dishID {
			return idx
		}
	}
	return -1
}

// RemoveLine 删除指定菜品行，返回是否删除
func (c *Cart) RemoveLine(dishID uint) bool {
	idx := c.FindLine(dishID)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// RestaurantID 返回购物车所属餐厅（取首行），空车返回 0
func (c *Cart) RestaurantID() uint {
	if c.IsEmpty() {
		return 0
	}
	return c.Items[0].RestaurantID
}

// Recalculate 按行重新计算合计，写入前必须调用
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartLine{}
	}
	totalItems := 0
	totalPrice := ZeroMoney()
	for _, line := range c.Items {
		totalItems += line.Quantity
		totalPrice = totalPrice.Plus(line.Subtotal())
	}
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
}
