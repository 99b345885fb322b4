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
	platformservice "simba-catalog-server/internal/platform/service"

	"github.com/shopspring/decimal"
)

// decimal(18,2) 可容纳的上限
var maxPrice = decimal.New(1, 16)

func (s *Service) validateFields(ctx context.Context, name string, price decimal.Decimal, categoryID uint) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return platformservice.NewValidationError("商品名称不能为空")
	}
	if utf8.RuneCountInString(name) > 255 {
		return platformservice.NewValidationError("商品名称不能超过 255 个字符")
	}
	if price.IsNegative() {
		return platformservice.NewValidationError("价格不能为负数")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return platformservice.NewValidationError("价格超出范围")
	}
	if categoryID == 0 {
		return platformservice.NewValidationError("请选择分类")
	}

	exists, err := s.productStore.CategoryExists(ctx, categoryID)
	if err != nil {
		return platformservice.NewInternalError("查询分类失败", err)
	}
	if !exists {
		return platformservice.NewValidationError("分类不存在")
	}
	return nil
}

// validateImages 校验每张图片并返回每张图片的优先级
func (s *Service) validateImages(files []*multipart.FileHeader, priorities []int, fallback int) ([]int, error) {
	if len(files) > consts.MaxUploadFilesPerRequest {
		return nil, platformservice.NewValidationError(
			fmt.Sprintf("单次最多上传 %d 张图片，实际为 %d 张", consts.MaxUploadFilesPerRequest, len(files)))
	}
	if len(priorities) > 0 && len(priorities) != len(files) {
		return nil, platformservice.NewValidationError(
			fmt.Sprintf("imagePriorities 数量(%d)与图片数量(%d)不一致", len(priorities), len(files)))
	}

	for i, file := range files {
		if _, err := s.ValidateImageFile(file); err != nil {
			return nil, platformservice.NewValidationError(fmt.Sprintf("第 %d 张图片: %s", i+1, err.Error()))
		}
	}

	if len(priorities) > 0 {
		return priorities, nil
	}
	resolved := make([]int, len(files))
	for i := range resolved {
		resolved[i] = fallback
	}
	return resolved, nil
}

// saveImages 按顺序保存文件，任一失败时回收本次已保存的文件
func (s *Service) saveImages(files []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, file := range files {
		name, err := s.files.SaveFile(file)
		if err != nil {
			s.discardFiles(saved)
			return nil, platformservice.NewIOError("图片保存失败", err)
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// discardFiles 回收尚未被任何行引用的文件，失败只记录日志
func (s *Service) discardFiles(names []string) {
	for _, name := range names {
		if err := s.files.Delete(name); err != nil {
			log.Printf("⚠️ 回收图片文件失败 %s: %v", name, err)
		}
	}
}

// deleteFiles 逐个删除已不再被引用的文件，继续执行并汇总失败
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
