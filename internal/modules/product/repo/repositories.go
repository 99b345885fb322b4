package repo

import (
	"context"

	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
)

// ProductStore 商品聚合（商品 + 图片行）的持久化。
// 写操作各自在一个事务内完成；找不到商品时返回 gorm.ErrRecordNotFound。
type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	CategoryExists(ctx context.Context, categoryID uint) (bool, error)
	CreateWithImages(ctx context.Context, product *model.Product, images []model.ProductImage) error
	UpdateWithImages(ctx context.Context, product *model.Product, added []model.ProductImage, removeIDs []uint) error
	DeleteWithImages(ctx context.Context, id uint) error
}

func NewProductRepository(db *gorm.DB) ProductStore {
	return &ProductRepository{db: db}
}
