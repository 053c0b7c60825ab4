package dto

// ── 提醒模块 DTO ──
// 字段命名沿用移动端既有契约（camelCase）

// CreateReminderRequest 创建提醒请求
type CreateReminderRequest struct {
	MedicationID *string `json:"medicationId"` // 为空表示通用提醒
	Time         string  `json:"time" binding:"required"`
	Frequency    string  `json:"frequency" binding:"required,oneof=daily twice_daily weekly"`
	Enabled      *bool   `json:"enabled"` // 缺省 true
	DaysOfWeek   []int   `json:"daysOfWeek"`
}

// UpdateReminderRequest 更新提醒请求（字段全部可选）
type UpdateReminderRequest struct {
	MedicationID *string `json:"medicationId"`
	Time         *string `json:"time"`
	Frequency    *string `json:"frequency" binding:"omitempty,oneof=daily twice_daily weekly"`
	Enabled      *bool   `json:"enabled"`
	DaysOfWeek   *[]int  `json:"daysOfWeek"`
}

// UpdateReminderSettingsRequest 全局提醒开关请求
type UpdateReminderSettingsRequest struct {
	GlobalEnabled *bool `json:"globalEnabled" binding:"required"`
}

// ReminderResponse 提醒信息响应
type ReminderResponse struct {
	ID             string  `json:"id"`
	MedicationID   *string `json:"medicationId"`
	MedicationName string  `json:"medicationName"`
	Time           string  `json:"time"`
	Frequency      string  `json:"frequency"`
	Enabled        bool    `json:"enabled"`
	DaysOfWeek     []int   `json:"daysOfWeek"`
}

// ReminderListResponse 提醒列表响应（含全局开关状态）
type ReminderListResponse struct {
	Reminders     []ReminderResponse `json:"reminders"`
	GlobalEnabled bool               `json:"globalEnabled"`
}
