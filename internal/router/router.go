package router

import (
	"simba-catalog-server/internal/middleware"
	"simba-catalog-server/internal/modules"
	"simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules    *modules.AppModules
	service    *service.AppService
	imageStore *storage.ImageStore
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService, imageStore *storage.ImageStore) *Router {
	return &Router{
		modules:    appModules,
		service:    appService,
		imageStore: imageStore,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")

	// 写接口共用同一组限制（多图上传按单文件上限放大请求体上限）
	writeGuards := []gin.HandlerFunc{
		middleware.UploadRateLimitMiddleware(rt.service),
		middleware.UploadBodyLimitMiddleware(rt.service),
	}

	registerPublicRoutes(api, rt.modules.System.Handler)
	registerSystemRoutes(api, rt.modules.System.Handler)
	registerProductRoutes(api, writeGuards, rt.modules.Product.Handler)
	registerCategoryRoutes(api, writeGuards, rt.modules.Category.Handler)
	registerImageRoutes(r, rt.service, rt.imageStore.Dir())
}
