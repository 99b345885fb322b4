package handler

import (
	"net/http"
	"strings"

	moduledto "simba-catalog-server/internal/modules/category/dto"
	"simba-catalog-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCategories(c *gin.Context) {
	items, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	item, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类失败")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateCategory 表单字段 name、image（可选）
func (h *Handler) CreateCategory(c *gin.Context) {
	form, err := httpx.ParseForm(c)
	if err != nil {
		httpx.WriteFormError(c, err)
		return
	}

	id, err := h.categoryService.Create(c.Request.Context(), moduledto.CategoryCreateRequest{
		Name:  strings.TrimSpace(form.Value("name")),
		Image: form.File("image"),
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "创建分类失败")
		return
	}
	c.JSON(http.StatusOK, id)
}

// EditCategory 表单字段 name、imageFile（可选，提交时替换图片）
func (h *Handler) EditCategory(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	form, err := httpx.ParseForm(c)
	if err != nil {
		httpx.WriteFormError(c, err)
		return
	}

	err = h.categoryService.Edit(c.Request.Context(), id, moduledto.CategoryEditRequest{
		Name:      strings.TrimSpace(form.Value("name")),
		ImageFile: form.File("imageFile"),
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "更新分类失败")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "删除分类失败")
		return
	}
	c.Status(http.StatusNoContent)
}
