package handler

import (
	"testing"

	"simba-catalog-server/internal/model"
	"simba-catalog-server/internal/modules/product/repo"
	productservice "simba-catalog-server/internal/modules/product/service"
	platformservice "simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"
	"simba-catalog-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testEnv struct {
	gdb    *gorm.DB
	store  *storage.ImageStore
	router *gin.Engine
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := testutils.SetupConfig(t)
	gdb := testutils.SetupDB(t)
	store, err := storage.NewImageStore(uploadDir)
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	h := New(productservice.New(platformservice.NewAppService(), repo.NewProductRepository(gdb), store))

	r := gin.New()
	api := r.Group("/api/product")
	api.GET("", h.ListProducts)
	api.GET("/:id", h.GetProduct)
	api.POST("", h.CreateProduct)
	api.PUT("/:id", h.EditProduct)
	api.DELETE("/:id", h.DeleteProduct)

	return &testEnv{gdb: gdb, store: store, router: r}
}

func (e *testEnv) seedCategory(t *testing.T, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	if err := e.gdb.Create(&c).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return c
}
