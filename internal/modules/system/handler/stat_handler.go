package handler

import (
	"net/http"

	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong", "version": consts.ApplicationVersion})
}

// GetServerStats 获取目录与存储概览
func (h *Handler) GetServerStats(c *gin.Context) {
	stats, err := h.systemService.GetServerStats(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "统计数据失败")
		return
	}
	c.JSON(http.StatusOK, stats)
}
