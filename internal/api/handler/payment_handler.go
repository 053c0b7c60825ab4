package handler

import (
	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/response"
)

// PaymentHandler 支付模块 HTTP 处理器
type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

// NewPaymentHandler 创建 PaymentHandler
func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Process 处理支付
// POST /api/v1/payments
func (h *PaymentHandler) Process(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	payment, err := h.paymentSvc.Process(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, payment)
}
