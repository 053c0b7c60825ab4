package dto

// ── 药品模块 DTO ──

// CreateMedicationRequest 创建药品请求
type CreateMedicationRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Dosage       string `json:"dosage" binding:"max=255"`
	Schedule     string `json:"schedule"`
	Stock        *int   `json:"stock" binding:"omitempty,min=0"`
	Notes        string `json:"notes"`
	Barcode      string `json:"barcode"`
	SideEffects  string `json:"side_effects"`
	Warnings     string `json:"warnings"`
	Interactions string `json:"interactions"`
}

// UpdateMedicationRequest 更新药品请求（字段全部可选）
type UpdateMedicationRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Dosage       *string `json:"dosage" binding:"omitempty,max=255"`
	Schedule     *string `json:"schedule"`
	Stock        *int    `json:"stock" binding:"omitempty,min=0"`
	Notes        *string `json:"notes"`
	Barcode      *string `json:"barcode"`
	SideEffects  *string `json:"side_effects"`
	Warnings     *string `json:"warnings"`
	Interactions *string `json:"interactions"`
	NeedsRefill  *bool   `json:"needs_refill"`
}

// ScanRequest 条码扫描请求
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// MedicationResponse 药品信息响应
type MedicationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
	Stock        int    `json:"stock"`
	Notes        string `json:"notes,omitempty"`
	Barcode      string `json:"barcode,omitempty"`
	SideEffects  string `json:"side_effects,omitempty"`
	Warnings     string `json:"warnings,omitempty"`
	Interactions string `json:"interactions,omitempty"`
	NeedsRefill  bool   `json:"needs_refill"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
