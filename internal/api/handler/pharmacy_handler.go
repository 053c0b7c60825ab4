package handler

import (
	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/response"
)

// PharmacyHandler 药房模块 HTTP 处理器
type PharmacyHandler struct {
	pharmacySvc *service.PharmacyService
}

// NewPharmacyHandler 创建 PharmacyHandler
func NewPharmacyHandler(pharmacySvc *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacySvc: pharmacySvc}
}

// List 获取药房列表
// GET /api/v1/pharmacies
func (h *PharmacyHandler) List(c *gin.Context) {
	pharmacies, err := h.pharmacySvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": pharmacies})
}

// Get 获取药房详情
// GET /api/v1/pharmacies/:id
func (h *PharmacyHandler) Get(c *gin.Context) {
	pharmacy, err := h.pharmacySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, pharmacy)
}
