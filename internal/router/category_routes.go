package router

import (
	categoryhandler "simba-catalog-server/internal/modules/category/handler"

	"github.com/gin-gonic/gin"
)

func registerCategoryRoutes(api *gin.RouterGroup, writeGuards []gin.HandlerFunc, h *categoryhandler.Handler) {
	category := api.Group("/category")
	category.GET("", h.ListCategories)
	category.GET("/:id", h.GetCategory)

	write := category.Group("", writeGuards...)
	write.POST("", h.CreateCategory)
	write.PUT("/:id", h.EditCategory)
	write.DELETE("/:id", h.DeleteCategory)
}
