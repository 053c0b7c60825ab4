package model

import "time"

// ── 服药记录状态枚举 ──

const (
	IntakeStatusPending = "pending"
	IntakeStatusTaken   = "taken"
	IntakeStatusMissed  = "missed"
	IntakeStatusSkipped = "skipped"
)

// MedicationIntake 服药记录表 — 对应 medication_intakes
// 一条记录表示某药品在某时刻的一次计划服用（剂量事件）。
// 不变量：taken_at 非空 当且仅当 status=taken（由 Service 层保证）。
type MedicationIntake struct {
	IntakeID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"intake_id"`
	UserID       string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	MedicationID string     `gorm:"type:uuid;not null;index"                       json:"medication_id"`
	ReminderID   *string    `gorm:"type:uuid"                                      json:"reminder_id,omitempty"` // 提醒删除时置空
	ScheduledAt  time.Time  `gorm:"not null;index"                                 json:"scheduled_at"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | taken | missed | skipped
	BaseModel

	// 关联
	Medication *Medication `gorm:"foreignKey:MedicationID;references:MedicationID" json:"medication,omitempty"`
}

// TableName 指定表名
func (MedicationIntake) TableName() string { return "medication_intakes" }
