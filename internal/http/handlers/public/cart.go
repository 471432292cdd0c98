package public

import (
	"strconv"
	"strings"

	"github.com/foodhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateCartItemRequest 更新购物车行数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(c.Request.Context(), actor.AccountID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// AddToCart 加入菜品，数量通过 ?quantity= 传入，缺省为 1
func (h *Handler) AddToCart(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	dishID, ok := parseIDParam(c, "dishId")
	if !ok {
		return
	}
	quantity := 1
	if raw := strings.TrimSpace(c.Query("quantity")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.invalid_quantity", nil)
			return
		}
		quantity = parsed
	}
	cart, err := h.CartService.AddLine(c.Request.Context(), actor.AccountID, dishID, quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	dishID, ok := parseIDParam(c, "dishId")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cart, err := h.CartService.UpdateLineQuantity(c.Request.Context(), actor.AccountID, dishID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除购物车中的菜品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	dishID, ok := parseIDParam(c, "dishId")
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveLine(c.Request.Context(), actor.AccountID, dishID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(c.Request.Context(), actor.AccountID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}
