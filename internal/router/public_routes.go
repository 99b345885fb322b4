package router

import (
	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/middleware"
	systemhandler "simba-catalog-server/internal/modules/system/handler"
	"simba-catalog-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup, h *systemhandler.Handler) {
	api.GET("/ping", h.Ping)
}

// registerImageRoutes 以 /images/<name> 提供图片目录，不允许列目录
func registerImageRoutes(r *gin.Engine, appService *service.AppService, dir string) {
	images := r.Group(consts.ImageURLPrefix)
	images.Use(middleware.StaticCacheMiddleware(appService))
	images.StaticFS("/", gin.Dir(dir, false))
}
