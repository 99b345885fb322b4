package middleware

import (
	"fmt"
	"net/http"

	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// UploadBodyLimitMiddleware 限制商品/分类写接口的请求体大小
// 上限 = 单文件上限 × 单次最多图片数，单个文件的大小由业务层再校验
func UploadBodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxBytes := appService.MaxUploadSizeBytes() * consts.MaxUploadFilesPerRequest

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("请求体过大，单个文件不能超过 %dMB，单次最多 %d 张图片", appService.MaxUploadSizeMB(), consts.MaxUploadFilesPerRequest),
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
