package service

import (
	"mime/multipart"

	"simba-catalog-server/internal/modules/category/repo"
	platformservice "simba-catalog-server/internal/platform/service"
)

type FileStore interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

type Service struct {
	*platformservice.AppService
	categoryStore repo.CategoryStore
	files         FileStore
}

func New(appService *platformservice.AppService, categoryStore repo.CategoryStore, files FileStore) *Service {
	return &Service{
		AppService:    appService,
		categoryStore: categoryStore,
		files:         files,
	}
}
