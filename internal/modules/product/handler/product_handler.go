package handler

import (
	"errors"
	"net/http"
	"strings"

	"simba-catalog-server/internal/modules/common/httpx"
	moduledto "simba-catalog-server/internal/modules/product/dto"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts GET /api/product
func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.productService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取商品列表失败")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetProduct GET /api/product/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取商品失败")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct POST /api/product，成功返回新商品 ID
func (h *Handler) CreateProduct(c *gin.Context) {
	form, err := httpx.ParseForm(c)
	if err != nil {
		httpx.WriteFormError(c, err)
		return
	}

	fields, err := bindProductFields(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.productService.Create(c.Request.Context(), moduledto.ProductCreateRequest{
		Name:            fields.name,
		Price:           fields.price,
		CategoryID:      fields.categoryID,
		Priority:        fields.priority,
		Images:          form.Files("images"),
		ImagePriorities: fields.imagePriorities,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "创建商品失败")
		return
	}
	c.JSON(http.StatusOK, id)
}

// EditProduct PUT /api/product/:id
func (h *Handler) EditProduct(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	form, err := httpx.ParseForm(c)
	if err != nil {
		httpx.WriteFormError(c, err)
		return
	}

	fields, err := bindProductFields(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	removeIDs, err := form.Uints("removeImageIds")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.productService.Edit(c.Request.Context(), id, moduledto.ProductEditRequest{
		Name:            fields.name,
		Price:           fields.price,
		CategoryID:      fields.categoryID,
		Priority:        fields.priority,
		Images:          form.Files("images"),
		ImagePriorities: fields.imagePriorities,
		RemoveImageIDs:  removeIDs,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "更新商品失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct DELETE /api/product/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "删除商品失败")
		return
	}
	c.Status(http.StatusNoContent)
}

type productFields struct {
	name            string
	price           decimal.Decimal
	categoryID      uint
	priority        int
	imagePriorities []int
}

// bindProductFields 解析标量字段；缺省的数字字段按 0 处理
func bindProductFields(form *httpx.Form) (productFields, error) {
	var (
		fields productFields
		err    error
	)

	fields.name = strings.TrimSpace(form.Value("name"))

	if raw := strings.TrimSpace(form.Value("price")); raw != "" {
		fields.price, err = decimal.NewFromString(raw)
		if err != nil {
			return fields, errors.New("price 参数错误")
		}
	}
	if fields.categoryID, err = form.Uint("categoryId"); err != nil {
		return fields, err
	}
	if fields.priority, err = form.Int("priority"); err != nil {
		return fields, err
	}
	if fields.imagePriorities, err = form.Ints("imagePriorities"); err != nil {
		return fields, err
	}
	return fields, nil
}
