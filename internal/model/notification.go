package model

// Notification 通知消息表 — 对应 notifications
// 提醒触发器到点触发时写入一条记录，供客户端拉取展示。
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	ReminderID     *string `gorm:"type:uuid"                                      json:"reminder_id,omitempty"`
	IntakeID       *string `gorm:"type:uuid"                                      json:"intake_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
