package handler

import (
	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/response"
)

// MedicationHandler 药品模块 HTTP 处理器
type MedicationHandler struct {
	medicationSvc *service.MedicationService
}

// NewMedicationHandler 创建 MedicationHandler
func NewMedicationHandler(medicationSvc *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationSvc: medicationSvc}
}

// List 获取药品列表
// GET /api/v1/medications
func (h *MedicationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	medications, err := h.medicationSvc.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": medications})
}

// Get 获取药品详情
// GET /api/v1/medications/:id
func (h *MedicationHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	medication, err := h.medicationSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, medication)
}

// Create 创建药品
// POST /api/v1/medications
func (h *MedicationHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	medication, err := h.medicationSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, medication)
}

// Update 更新药品
// PUT /api/v1/medications/:id
func (h *MedicationHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	medication, err := h.medicationSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, medication)
}

// Delete 删除药品
// DELETE /api/v1/medications/:id
func (h *MedicationHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.medicationSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// Scan 条码识别
// POST /api/v1/medications/scan
func (h *MedicationHandler) Scan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.medicationSvc.Scan(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
