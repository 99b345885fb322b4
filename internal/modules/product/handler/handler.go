package handler

import productservice "simba-catalog-server/internal/modules/product/service"

type Handler struct {
	productService *productservice.Service
}

func New(productService *productservice.Service) *Handler {
	return &Handler{productService: productService}
}
