package service

import (
	"context"
	"errors"
	"log"

	"simba-catalog-server/internal/model"
	moduledto "simba-catalog-server/internal/modules/product/dto"
	platformservice "simba-catalog-server/internal/platform/service"

	"gorm.io/gorm"
)

func (s *Service) List(ctx context.Context) ([]moduledto.ProductItemResponse, error) {
	products, err := s.productStore.List(ctx)
	if err != nil {
		return nil, platformservice.NewInternalError("获取商品列表失败", err)
	}
	return moduledto.ToProductItems(products), nil
}

// Get 返回带图片与分类的商品实体
func (s *Service) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		return nil, translateFindError(err)
	}
	return product, nil
}

// Create 先保存全部图片文件，再在一个事务内写入商品与图片行；
// 事务失败时删除本次保存的文件，不会留下指向缺失文件的行。
func (s *Service) Create(ctx context.Context, req moduledto.ProductCreateRequest) (uint, error) {
	if err := s.validateFields(ctx, req.Name, req.Price, req.CategoryID); err != nil {
		return 0, err
	}
	priorities, err := s.validateImages(req.Images, req.ImagePriorities, req.Priority)
	if err != nil {
		return 0, err
	}

	saved, err := s.saveImages(req.Images)
	if err != nil {
		return 0, err
	}

	product := moduledto.NewProductFromCreate(req)
	if err := s.productStore.CreateWithImages(ctx, &product, imageRows(saved, priorities)); err != nil {
		s.discardFiles(saved)
		return 0, platformservice.NewInternalError("保存商品失败", err)
	}
	return product.ID, nil
}

// Edit 覆盖标量字段、追加新图片并移除 removeImageIDs 中属于该商品的图片。
// 其他商品的图片 ID 被静默忽略。旧文件在提交后删除。
func (s *Service) Edit(ctx context.Context, id uint, req moduledto.ProductEditRequest) error {
	product, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		return translateFindError(err)
	}

	if err := s.validateFields(ctx, req.Name, req.Price, req.CategoryID); err != nil {
		return err
	}
	priorities, err := s.validateImages(req.Images, req.ImagePriorities, req.Priority)
	if err != nil {
		return err
	}

	removed := attachedImages(product.Images, req.RemoveImageIDs)
	removeIDs := make([]uint, 0, len(removed))
	for _, img := range removed {
		removeIDs = append(removeIDs, img.ID)
	}

	moduledto.ApplyProductEdit(req, product)

	saved, err := s.saveImages(req.Images)
	if err != nil {
		return err
	}

	if err := s.productStore.UpdateWithImages(ctx, product, imageRows(saved, priorities), removeIDs); err != nil {
		s.discardFiles(saved)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("商品不存在")
		}
		return platformservice.NewInternalError("更新商品失败", err)
	}

	return s.deleteFiles(imageNames(removed), "商品已更新，但旧图片文件删除失败")
}

// Delete 在一个事务内删除商品与图片行，随后逐个删除图片文件。
// 文件删除失败不会中断循环，也不会恢复商品；所有失败汇总为一个 IO 错误。
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		return translateFindError(err)
	}

	if err := s.productStore.DeleteWithImages(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("商品不存在")
		}
		return platformservice.NewInternalError("删除商品失败", err)
	}

	return s.deleteFiles(imageNames(product.Images), "商品已删除，但图片文件删除失败")
}

func translateFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformservice.NewNotFoundError("商品不存在")
	}
	log.Printf("Find product error: %v", err)
	return platformservice.NewInternalError("查询商品失败", err)
}

// attachedImages 过滤出 ids 中确实属于该商品的图片
func attachedImages(images []model.ProductImage, ids []uint) []model.ProductImage {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	matched := make([]model.ProductImage, 0, len(ids))
	for _, img := range images {
		if _, ok := wanted[img.ID]; ok {
			matched = append(matched, img)
		}
	}
	return matched
}

func imageNames(images []model.ProductImage) []string {
	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Image)
	}
	return names
}

func imageRows(names []string, priorities []int) []model.ProductImage {
	rows := make([]model.ProductImage, 0, len(names))
	for i, name := range names {
		rows = append(rows, model.ProductImage{Image: name, Priority: priorities[i]})
	}
	return rows
}
