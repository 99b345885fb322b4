package product

import (
	"simba-catalog-server/internal/modules/product/handler"
	"simba-catalog-server/internal/modules/product/repo"
	"simba-catalog-server/internal/modules/product/service"
	platformservice "simba-catalog-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, productStore repo.ProductStore, files service.FileStore) *Module {
	moduleService := service.New(appService, productStore, files)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
