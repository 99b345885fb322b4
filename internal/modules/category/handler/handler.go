package handler

import categoryservice "simba-catalog-server/internal/modules/category/service"

type Handler struct {
	categoryService *categoryservice.Service
}

func New(categoryService *categoryservice.Service) *Handler {
	return &Handler{categoryService: categoryService}
}
