package handler

import (
	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/response"
)

// IntakeHandler 服药记录模块 HTTP 处理器
type IntakeHandler struct {
	intakeSvc *service.IntakeService
}

// NewIntakeHandler 创建 IntakeHandler
func NewIntakeHandler(intakeSvc *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeSvc: intakeSvc}
}

// List 获取某日服药记录（date 缺省为当日）
// GET /api/v1/intakes?date=2006-01-02
func (h *IntakeHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	intakes, err := h.intakeSvc.ListByDate(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": intakes})
}

// UpdateStatus 标记服药状态
// PUT /api/v1/intakes/:id/status
func (h *IntakeHandler) UpdateStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateIntakeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	intake, err := h.intakeSvc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, intake)
}
