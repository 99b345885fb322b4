package repo

import (
	"context"

	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
)

type SystemRepository struct {
	db *gorm.DB
}

func (r *SystemRepository) CountCatalog(ctx context.Context) (CatalogCounts, error) {
	var counts CatalogCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Category{}).Count(&counts.Categories).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Product{}).Count(&counts.Products).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.ProductImage{}).Count(&counts.Images).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
