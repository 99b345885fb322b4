package repo

import (
	"context"

	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	db *gorm.DB
}

func imagesInInsertOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", imagesInInsertOrder).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", imagesInInsertOrder).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) CategoryExists(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", categoryID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) CreateWithImages(ctx context.Context, product *model.Product, images []model.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].ProductID = product.ID
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		product.Images = append(product.Images, images...)
		return nil
	})
}

func (r *ProductRepository) UpdateWithImages(ctx context.Context, product *model.Product, added []model.ProductImage, removeIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 加载后可能已被并发删除
		var current model.Product
		if err := tx.Select("id").First(&current, product.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"priority":    product.Priority,
			"category_id": product.CategoryID,
		}).Error; err != nil {
			return err
		}

		if len(removeIDs) > 0 {
			if err := tx.Where("product_id = ? AND id IN ?", product.ID, removeIDs).
				Delete(&model.ProductImage{}).Error; err != nil {
				return err
			}
		}

		if len(added) > 0 {
			for i := range added {
				added[i].ProductID = product.ID
			}
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProductRepository) DeleteWithImages(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 外键级联之外显式删除图片行，未开启外键的连接同样成立
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
