package di

import (
	"simba-catalog-server/internal/modules"
	"simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/router"
)

type Application struct {
	Router  *router.Router
	Service *service.AppService
	Modules *modules.AppModules
}

func NewApplication(r *router.Router, s *service.AppService, m *modules.AppModules) *Application {
	return &Application{
		Router:  r,
		Service: s,
		Modules: m,
	}
}
