package dto

// ── 服药记录模块 DTO ──

// UpdateIntakeStatusRequest 标记服药状态请求
type UpdateIntakeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=taken skipped"`
}

// IntakeResponse 服药记录响应
type IntakeResponse struct {
	ID             string `json:"id"`
	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name,omitempty"`
	ScheduledAt    string `json:"scheduled_at"`
	TakenAt        string `json:"taken_at,omitempty"`
	Status         string `json:"status"`
}
