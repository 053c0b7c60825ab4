package handler

import (
	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/response"
)

// AnalyticsHandler 统计分析模块 HTTP 处理器
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler 创建 AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Get 获取依从率统计
// GET /api/v1/analytics
func (h *AnalyticsHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	analytics, err := h.analyticsSvc.Get(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, analytics)
}
