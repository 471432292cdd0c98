package admin

import (
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/provider"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 管理员接口：账号、订单总览、授权策略与审计日志
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getActor(c *gin.Context) (service.Actor, bool) {
	return handlershared.GetActor(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
