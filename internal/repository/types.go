package repository

import "time"

// AccountListFilter 查询账号列表的过滤条件
type AccountListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RestaurantListFilter 查询餐厅列表的过滤条件
type RestaurantListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}

// DishListFilter 查询菜品列表的过滤条件
type DishListFilter struct {
	Page          int
	PageSize      int
	Keyword       string
	RestaurantID  uint
	CategoryID    uint
	AvailableOnly bool
	WithCategory  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page         int
	PageSize     int
	CustomerID   uint
	RestaurantID uint
	Status       string
	OrderNo      string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// LoginLogListFilter 查询登录日志列表的过滤条件
type LoginLogListFilter struct {
	Page        int
	PageSize    int
	AccountID   uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuthzAuditLogListFilter 查询后台审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorID      uint
	TargetAccountID uint
	Action          string
	Role            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
