package dto

import (
	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/model"
)

// ToProductItem 实体 -> 列表视图；无图片时 images 为空数组而非 null
func ToProductItem(p model.Product) ProductItemResponse {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, consts.ImageURLPrefix+img.Image)
	}

	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}

	return ProductItemResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Priority:     p.Priority,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Images:       images,
	}
}

func ToProductItems(products []model.Product) []ProductItemResponse {
	items := make([]ProductItemResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductItem(p))
	}
	return items
}

// NewProductFromCreate 只映射标量字段，图片由业务层处理
func NewProductFromCreate(req ProductCreateRequest) model.Product {
	return model.Product{
		Name:       req.Name,
		Price:      req.Price,
		Priority:   req.Priority,
		CategoryID: req.CategoryID,
	}
}

// ApplyProductEdit 覆盖名称、价格、分类与优先级，不触碰 Images
func ApplyProductEdit(req ProductEditRequest, p *model.Product) {
	p.Name = req.Name
	p.Price = req.Price
	p.Priority = req.Priority
	p.CategoryID = req.CategoryID
}
