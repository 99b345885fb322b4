package repo

import (
	"context"

	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
)

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	// DeleteIfNoProducts 分类下没有商品时删除分类；返回统计到的商品数，大于 0 表示未删除
	DeleteIfNoProducts(ctx context.Context, id uint) (int64, error)
	// DeleteCascade 删除分类及其全部商品与图片行，返回被删除图片的存储名
	DeleteCascade(ctx context.Context, id uint) ([]string, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryStore {
	return &CategoryRepository{db: db}
}
