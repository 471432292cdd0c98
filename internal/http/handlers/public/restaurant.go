package public

import (
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateRestaurantRequest 更新餐厅请求，缺省字段不修改
type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	ImageURL    *string `json:"image_url"`
}

// ListRestaurants 餐厅列表
func (h *Handler) ListRestaurants(c *gin.Context) {
	page, pageSize := queryPagination(c)

	restaurants, total, err := h.RestaurantService.List(repository.RestaurantListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, restaurants, response.BuildPagination(page, pageSize, total))
}

// GetRestaurant 餐厅详情（含分类与菜品）
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.RestaurantService.GetWithMenu(id)
	if err != nil {
		respondWithMappedError(c, err, restaurantErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, restaurant)
}

// GetMyRestaurant 当前餐厅账号的餐厅信息
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	restaurant, err := h.RestaurantService.GetByAccount(actor.AccountID)
	if err != nil {
		respondWithMappedError(c, err, restaurantErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, restaurant)
}

// UpdateRestaurant 更新餐厅
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	restaurant, err := h.RestaurantService.Update(actor, id, service.UpdateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondWithMappedError(c, err, restaurantErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, restaurant)
}

// DeleteRestaurant 删除餐厅
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RestaurantService.Delete(actor, id); err != nil {
		respondWithMappedError(c, err, restaurantErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
