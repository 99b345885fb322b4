package service

import (
	"mime/multipart"

	"simba-catalog-server/internal/modules/product/repo"
	platformservice "simba-catalog-server/internal/platform/service"
)

// FileStore 图片文件的保存与删除，由 storage.ImageStore 实现
type FileStore interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

type Service struct {
	*platformservice.AppService
	productStore repo.ProductStore
	files        FileStore
}

func New(appService *platformservice.AppService, productStore repo.ProductStore, files FileStore) *Service {
	return &Service{
		AppService:   appService,
		productStore: productStore,
		files:        files,
	}
}
