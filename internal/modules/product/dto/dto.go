package dto

import (
	"mime/multipart"

	"github.com/shopspring/decimal"
)

// ProductCreateRequest 创建商品的表单字段。
// ImagePriorities 可选，提供时需与 Images 一一对应；缺省时所有图片使用 Priority。
type ProductCreateRequest struct {
	Name            string
	Price           decimal.Decimal
	CategoryID      uint
	Priority        int
	Images          []*multipart.FileHeader
	ImagePriorities []int
}

type ProductEditRequest struct {
	Name            string
	Price           decimal.Decimal
	CategoryID      uint
	Priority        int
	Images          []*multipart.FileHeader
	ImagePriorities []int
	RemoveImageIDs  []uint
}

// ProductItemResponse 列表视图
type ProductItemResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Priority     int             `json:"priority"`
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Images       []string        `json:"images"`
}
