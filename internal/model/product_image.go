package model

type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"productId" gorm:"not null;index"`
	Image     string `json:"image" gorm:"size:255;not null"`
	Priority  int    `json:"priority" gorm:"not null;default:0"`
}

func (ProductImage) TableName() string {
	return "tbl_product_images"
}
