package public

import (
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getActor(c *gin.Context) (service.Actor, bool) {
	return handlershared.GetActor(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func queryPagination(c *gin.Context) (int, int) {
	return handlershared.QueryPagination(c)
}
