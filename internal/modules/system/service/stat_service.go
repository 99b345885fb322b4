package service

import (
	"context"
	"runtime"

	moduledto "simba-catalog-server/internal/modules/system/dto"
	platformservice "simba-catalog-server/internal/platform/service"
)

// GetServerStats 目录数据量、图片目录用量与运行时信息
func (s *Service) GetServerStats(ctx context.Context) (*moduledto.ServerStatsResponse, error) {
	counts, err := s.systemStore.CountCatalog(ctx)
	if err != nil {
		return nil, platformservice.NewInternalError("统计目录数据失败", err)
	}

	files, size, err := s.storage.Usage()
	if err != nil {
		return nil, platformservice.NewIOError("统计图片目录失败", err)
	}

	return &moduledto.ServerStatsResponse{
		CategoryCount: counts.Categories,
		ProductCount:  counts.Products,
		ImageCount:    counts.Images,
		StoredFiles:   files,
		StorageUsage:  size,
		SystemInfo: moduledto.SystemInfoResponse{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}, nil
}
