package public

import "github.com/foodhub-next/internal/provider"

// Handler 游客、顾客与餐厅共用的接口处理器，角色权限由路由上的 RBAC 中间件控制
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
