//go:build wireinject
// +build wireinject

package di

import (
	"simba-catalog-server/internal/modules"
	categoryrepo "simba-catalog-server/internal/modules/category/repo"
	productrepo "simba-catalog-server/internal/modules/product/repo"
	systemrepo "simba-catalog-server/internal/modules/system/repo"
	platformservice "simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"
	"simba-catalog-server/internal/router"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, imageStore *storage.ImageStore) (*Application, error) {
	wire.Build(
		productrepo.NewProductRepository,
		categoryrepo.NewCategoryRepository,
		systemrepo.NewSystemRepository,
		platformservice.NewAppService,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
