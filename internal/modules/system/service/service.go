package service

import (
	"simba-catalog-server/internal/modules/system/repo"
	platformservice "simba-catalog-server/internal/platform/service"
)

// StorageUsage 图片目录用量，由 storage.ImageStore 实现
type StorageUsage interface {
	Usage() (files int, bytes int64, err error)
}

type Service struct {
	*platformservice.AppService
	systemStore repo.SystemStore
	storage     StorageUsage
}

func New(appService *platformservice.AppService, systemStore repo.SystemStore, storage StorageUsage) *Service {
	return &Service{
		AppService:  appService,
		systemStore: systemStore,
		storage:     storage,
	}
}
