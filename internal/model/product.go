package model

import "github.com/shopspring/decimal"

func init() {
	// 价格按 JSON 数字输出（9.99 而不是 "9.99"）
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:255;not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Priority   int             `json:"priority" gorm:"not null;default:0"`
	CategoryID uint            `json:"categoryId" gorm:"not null;index"`
	Category   *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	// 图片完全归商品所有，删除商品时级联删除
	Images []ProductImage `json:"images" gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Product) TableName() string {
	return "tbl_products"
}
