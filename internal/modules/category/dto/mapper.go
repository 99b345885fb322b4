package dto

import (
	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/model"
)

func ToCategoryItem(c model.Category) CategoryItemResponse {
	imagePath := consts.NoImagePath
	if c.Image != "" {
		imagePath = consts.ImageURLPrefix + c.Image
	}
	return CategoryItemResponse{
		ID:        c.ID,
		Name:      c.Name,
		ImagePath: imagePath,
	}
}

func ToCategoryItems(categories []model.Category) []CategoryItemResponse {
	items := make([]CategoryItemResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, ToCategoryItem(c))
	}
	return items
}

// NewCategoryFromCreate 图片由业务层保存后再填充
func NewCategoryFromCreate(req CategoryCreateRequest) model.Category {
	return model.Category{Name: req.Name}
}

// ApplyCategoryEdit 名称总是覆盖；只有提交了新文件时才覆盖图片
func ApplyCategoryEdit(req CategoryEditRequest, c *model.Category) {
	c.Name = req.Name
	if req.ImageFile != nil {
		c.Image = req.Image
	}
}
