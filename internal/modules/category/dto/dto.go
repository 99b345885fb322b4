package dto

import "mime/multipart"

type CategoryCreateRequest struct {
	Name  string
	Image *multipart.FileHeader
}

// CategoryEditRequest Image 为新文件保存后的存储名，仅在 ImageFile 非空时生效
type CategoryEditRequest struct {
	Name      string
	ImageFile *multipart.FileHeader
	Image     string
}

type CategoryItemResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}
