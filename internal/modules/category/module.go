package category

import (
	"simba-catalog-server/internal/modules/category/handler"
	"simba-catalog-server/internal/modules/category/repo"
	"simba-catalog-server/internal/modules/category/service"
	platformservice "simba-catalog-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, categoryStore repo.CategoryStore, files service.FileStore) *Module {
	moduleService := service.New(appService, categoryStore, files)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
