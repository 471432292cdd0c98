package public

import (
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Note string `json:"note"`
}

// UpdateOrderStatusRequest 推进订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderListFilter(c *gin.Context) repository.OrderListFilter {
	page, pageSize := queryPagination(c)
	return repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	}
}

// CreateOrder 从购物车下单
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	order, err := h.OrderService.CreateOrderFromCart(c.Request.Context(), actor.AccountID, req.Note)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, order)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(actor, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, order)
}

// ListMyOrders 顾客订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	filter := orderListFilter(c)
	orders, total, err := h.OrderService.ListMyOrders(actor, filter)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// ListRestaurantOrders 餐厅订单列表
func (h *Handler) ListRestaurantOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	filter := orderListFilter(c)
	orders, total, err := h.OrderService.ListRestaurantOrders(actor, filter)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, order)
}

// CancelOrder 顾客取消待确认订单
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, order)
}
