package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"simba-catalog-server/internal/consts"
	moduledto "simba-catalog-server/internal/modules/category/dto"
	platformservice "simba-catalog-server/internal/platform/service"

	"gorm.io/gorm"
)

func (s *Service) List(ctx context.Context) ([]moduledto.CategoryItemResponse, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, platformservice.NewInternalError("获取分类列表失败", err)
	}
	return moduledto.ToCategoryItems(categories), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*moduledto.CategoryItemResponse, error) {
	category, err := s.categoryStore.FindByID(ctx, id)
	if err != nil {
		return nil, translateFindError(err)
	}
	item := moduledto.ToCategoryItem(*category)
	return &item, nil
}

// Create 可选图片先落盘，写库失败时删除该文件
func (s *Service) Create(ctx context.Context, req moduledto.CategoryCreateRequest) (uint, error) {
	if err := validateName(req.Name); err != nil {
		return 0, err
	}
	if err := s.validateImage(req.Image); err != nil {
		return 0, err
	}

	category := moduledto.NewCategoryFromCreate(req)
	if req.Image != nil {
		name, err := s.files.SaveFile(req.Image)
		if err != nil {
			return 0, platformservice.NewIOError("图片保存失败", err)
		}
		category.Image = name
	}

	if err := s.categoryStore.Create(ctx, &category); err != nil {
		s.discardFile(category.Image)
		return 0, platformservice.NewInternalError("创建分类失败", err)
	}
	return category.ID, nil
}

// Edit 提交新图片时替换旧图片，旧文件在提交后删除
func (s *Service) Edit(ctx context.Context, id uint, req moduledto.CategoryEditRequest) error {
	category, err := s.categoryStore.FindByID(ctx, id)
	if err != nil {
		return translateFindError(err)
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := s.validateImage(req.ImageFile); err != nil {
		return err
	}

	oldImage := category.Image
	req.Image = ""
	if req.ImageFile != nil {
		name, err := s.files.SaveFile(req.ImageFile)
		if err != nil {
			return platformservice.NewIOError("图片保存失败", err)
		}
		req.Image = name
	}

	moduledto.ApplyCategoryEdit(req, category)

	if err := s.categoryStore.Update(ctx, category); err != nil {
		s.discardFile(req.Image)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("分类不存在")
		}
		return platformservice.NewInternalError("更新分类失败", err)
	}

	if req.ImageFile != nil && oldImage != "" && oldImage != category.Image {
		return s.deleteFiles([]string{oldImage}, "分类已更新，但旧图片文件删除失败")
	}
	return nil
}

// Delete 按 catalog.category_delete_policy 处理仍有商品的分类：
// restrict 返回冲突；cascade 连同商品与图片一起删除。
func (s *Service) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryStore.FindByID(ctx, id)
	if err != nil {
		return translateFindError(err)
	}

	var names []string
	switch s.CategoryDeletePolicy() {
	case consts.CategoryDeleteCascade:
		names, err = s.categoryStore.DeleteCascade(ctx, id)
	default:
		var count int64
		count, err = s.categoryStore.DeleteIfNoProducts(ctx, id)
		if err == nil && count > 0 {
			return platformservice.NewConflictError(fmt.Sprintf("分类下仍有 %d 个商品，无法删除", count))
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return platformservice.NewNotFoundError("分类不存在")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// 统计之后有商品并发写入，由外键 RESTRICT 拦截
			return platformservice.NewConflictError("分类下仍有商品，无法删除")
		}
		return platformservice.NewInternalError("删除分类失败", err)
	}

	if category.Image != "" {
		names = append(names, category.Image)
	}
	return s.deleteFiles(names, "分类已删除，但图片文件删除失败")
}

func translateFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformservice.NewNotFoundError("分类不存在")
	}
	log.Printf("Find category error: %v", err)
	return platformservice.NewInternalError("查询分类失败", err)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return platformservice.NewValidationError("分类名称不能为空")
	}
	if utf8.RuneCountInString(name) > 255 {
		return platformservice.NewValidationError("分类名称不能超过 255 个字符")
	}
	return nil
}

func (s *Service) validateImage(file *multipart.FileHeader) error {
	if file == nil {
		return nil
	}
	if _, err := s.ValidateImageFile(file); err != nil {
		return platformservice.NewValidationError(err.Error())
	}
	return nil
}

func (s *Service) discardFile(name string) {
	if name == "" {
		return
	}
	if err := s.files.Delete(name); err != nil {
		log.Printf("⚠️ 回收图片文件失败 %s: %v", name, err)
	}
}

func (s *Service) deleteFiles(names []string, message string) error {
	var (
		failed []string
		errs   []error
	)
	for _, name := range names {
		if err := s.files.Delete(name); err != nil {
			log.Printf("⚠️ 删除图片文件失败 %s: %v", name, err)
			failed = append(failed, name)
			errs = append(errs, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return platformservice.NewIOError(
		fmt.Sprintf("%s: %s", message, strings.Join(failed, ", ")),
		errors.Join(errs...),
	)
}
