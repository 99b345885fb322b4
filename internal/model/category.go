package model

// Category 商品分类，最多一张图片
type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:255;not null"`
	Image string `json:"image" gorm:"size:255"` // 图片存储名，为空表示没有图片
}

func (Category) TableName() string {
	return "tbl_categories"
}
