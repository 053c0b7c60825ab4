package dto

// ── 通知模块 DTO ──

// NotificationResponse 通知消息响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
