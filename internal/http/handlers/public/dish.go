package public

import (
	"strconv"

	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDishRequest 创建菜品请求，分类可传 category_id 或 category_name
type CreateDishRequest struct {
	RestaurantID uint   `json:"restaurant_id"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        string `json:"price" binding:"required"`
	Thumbnail    string `json:"thumbnail"`
	IsAvailable  *bool  `json:"is_available"`
}

// UpdateDishRequest 更新菜品请求，缺省字段不修改
type UpdateDishRequest struct {
	CategoryID   *uint   `json:"category_id"`
	CategoryName *string `json:"category_name"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *string `json:"price"`
	Thumbnail    *string `json:"thumbnail"`
	IsAvailable  *bool   `json:"is_available"`
}

// ListDishes 菜品列表
func (h *Handler) ListDishes(c *gin.Context) {
	page, pageSize := queryPagination(c)
	restaurantID, _ := strconv.ParseUint(c.Query("restaurant_id"), 10, 64)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	dishes, total, err := h.DishService.List(repository.DishListFilter{
		Page:         page,
		PageSize:     pageSize,
		Keyword:      c.Query("keyword"),
		RestaurantID: uint(restaurantID),
		CategoryID:   uint(categoryID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, dishes, response.BuildPagination(page, pageSize, total))
}

// GetDish 菜品详情
func (h *Handler) GetDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dish, err := h.DishService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, dish)
}

// ListDishesByRestaurant 餐厅下的菜品
func (h *Handler) ListDishesByRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}
	page, pageSize := queryPagination(c)
	dishes, total, err := h.DishService.ListByRestaurant(restaurantID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.SuccessWithPage(c, dishes, response.BuildPagination(page, pageSize, total))
}

// ListDishesByCategory 分类下的菜品
func (h *Handler) ListDishesByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	page, pageSize := queryPagination(c)
	dishes, total, err := h.DishService.ListByCategory(categoryID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.SuccessWithPage(c, dishes, response.BuildPagination(page, pageSize, total))
}

// CreateDish 创建菜品
func (h *Handler) CreateDish(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	dish, err := h.DishService.Create(actor, service.CreateDishInput{
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Thumbnail:    req.Thumbnail,
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, dish)
}

// UpdateDish 更新菜品
func (h *Handler) UpdateDish(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	dish, err := h.DishService.Update(actor, id, service.UpdateDishInput{
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Thumbnail:    req.Thumbnail,
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, dish)
}

// DeleteDish 删除菜品
func (h *Handler) DeleteDish(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.DishService.Delete(actor, id); err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
