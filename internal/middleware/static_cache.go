package middleware

import (
	"simba-catalog-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为图片静态资源添加 Cache-Control 头
// 缓存策略由 upload.cache_control 配置决定
func StaticCacheMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := appService.CacheControl(); cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
