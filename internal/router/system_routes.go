package router

import (
	systemhandler "simba-catalog-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(api *gin.RouterGroup, h *systemhandler.Handler) {
	system := api.Group("/system")
	system.GET("/stats", h.GetServerStats)
}
