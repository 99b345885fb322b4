package modules

import (
	"simba-catalog-server/internal/modules/category"
	categoryrepo "simba-catalog-server/internal/modules/category/repo"
	"simba-catalog-server/internal/modules/product"
	productrepo "simba-catalog-server/internal/modules/product/repo"
	"simba-catalog-server/internal/modules/system"
	systemrepo "simba-catalog-server/internal/modules/system/repo"
	platformservice "simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"
)

type AppModules struct {
	Product  *product.Module
	Category *category.Module
	System   *system.Module
}

func New(
	appService *platformservice.AppService,
	imageStore *storage.ImageStore,
	productStore productrepo.ProductStore,
	categoryStore categoryrepo.CategoryStore,
	systemStore systemrepo.SystemStore,
) *AppModules {
	return &AppModules{
		Product:  product.New(appService, productStore, imageStore),
		Category: category.New(appService, categoryStore, imageStore),
		System:   system.New(appService, systemStore, imageStore),
	}
}
