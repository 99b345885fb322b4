package repo

import (
	"context"

	"gorm.io/gorm"
)

// CatalogCounts 三张目录表的行数
type CatalogCounts struct {
	Categories int64
	Products   int64
	Images     int64
}

type SystemStore interface {
	CountCatalog(ctx context.Context) (CatalogCounts, error)
}

func NewSystemRepository(db *gorm.DB) SystemStore {
	return &SystemRepository{db: db}
}
