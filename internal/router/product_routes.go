package router

import (
	producthandler "simba-catalog-server/internal/modules/product/handler"

	"github.com/gin-gonic/gin"
)

func registerProductRoutes(api *gin.RouterGroup, writeGuards []gin.HandlerFunc, h *producthandler.Handler) {
	product := api.Group("/product")
	product.GET("", h.ListProducts)
	product.GET("/:id", h.GetProduct)

	write := product.Group("", writeGuards...)
	write.POST("", h.CreateProduct)
	write.PUT("/:id", h.EditProduct)
	write.DELETE("/:id", h.DeleteProduct)
}
