package public

import (
	"strconv"

	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求，管理员需指定 restaurant_id
type CategoryRequest struct {
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	SortOrder    int    `json:"sort_order"`
}

// ListCategories 当前餐厅的分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	restaurantID, _ := strconv.ParseUint(c.Query("restaurant_id"), 10, 64)
	categories, err := h.CategoryService.ListManaged(actor, uint(restaurantID))
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	allowed, err := h.RestaurantService.CanManage(actor, category.RestaurantID)
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	if !allowed {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.category_name_required", err)
		return
	}
	category, err := h.CategoryService.Create(actor, service.CategoryInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.category_name_required", err)
		return
	}
	category, err := h.CategoryService.Update(actor, id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(actor, id); err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
