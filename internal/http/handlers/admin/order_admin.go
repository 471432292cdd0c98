package admin

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 全部订单列表，支持按状态、订单号、顾客、餐厅与创建时间筛选
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	var ok bool
	if filter.CustomerID, ok = parseUintQuery(c, "customer_id"); !ok {
		return
	}
	if filter.RestaurantID, ok = parseUintQuery(c, "restaurant_id"); !ok {
		return
	}
	if filter.CreatedFrom, ok = parseTimeQuery(c, "created_from"); !ok {
		return
	}
	if filter.CreatedTo, ok = parseTimeQuery(c, "created_to"); !ok {
		return
	}

	orders, total, err := h.OrderService.ListAllOrders(filter)
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// parseTimeQuery 解析 RFC3339 时间参数，空值返回 nil
func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &parsed, true
}
