package repo

import (
	"context"

	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Category
		if err := tx.Select("id").First(&current, category.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Category{}).Where("id = ?", category.ID).Updates(map[string]any{
			"name":  category.Name,
			"image": category.Image,
		}).Error
	})
}

// DeleteIfNoProducts 在同一事务内统计商品并删除分类，仍有商品时不删除并返回商品数
func (r *CategoryRepository) DeleteIfNoProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return count, err
}

func (r *CategoryRepository) DeleteCascade(ctx context.Context, id uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs := func() *gorm.DB {
			return tx.Model(&model.Product{}).Select("id").Where("category_id = ?", id)
		}

		if err := tx.Model(&model.ProductImage{}).
			Where("product_id IN (?)", productIDs()).
			Order("id ASC").
			Pluck("image", &names).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id IN (?)", productIDs()).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
