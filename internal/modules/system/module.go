package system

import (
	"simba-catalog-server/internal/modules/system/handler"
	"simba-catalog-server/internal/modules/system/repo"
	"simba-catalog-server/internal/modules/system/service"
	platformservice "simba-catalog-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, systemStore repo.SystemStore, storage service.StorageUsage) *Module {
	moduleService := service.New(appService, systemStore, storage)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
