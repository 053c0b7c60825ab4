package model

// ── 提醒频率枚举 ──

const (
	FrequencyDaily      = "daily"
	FrequencyTwiceDaily = "twice_daily"
	FrequencyWeekly     = "weekly"
)

// Reminder 用药提醒规则表 — 对应 reminders
//   - MedicationID 为空表示"通用提醒"，不关联具体药品
//   - Time 为 HH:MM 格式的当日时刻，不含日期
//   - DaysOfWeek 仅 frequency=weekly 时有意义且必须非空（0=周日 .. 6=周六）
type Reminder struct {
	ReminderID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reminder_id"`
	UserID       string   `gorm:"type:uuid;not null;index"                       json:"user_id"`
	MedicationID *string  `gorm:"type:uuid"                                      json:"medication_id,omitempty"`
	Time         string   `gorm:"type:varchar(5);not null"                       json:"time"`
	Frequency    string   `gorm:"type:varchar(20);not null"                      json:"frequency"` // daily | twice_daily | weekly
	Enabled      bool     `gorm:"not null;default:true"                          json:"enabled"`
	DaysOfWeek   IntArray `gorm:"type:int[]"                                     json:"days_of_week,omitempty"`
	BaseModel

	// 关联
	Medication *Medication `gorm:"foreignKey:MedicationID;references:MedicationID" json:"medication,omitempty"`
}

// TableName 指定表名
func (Reminder) TableName() string { return "reminders" }

// MedicationName 返回关联药品名称，通用提醒返回占位名
func (r *Reminder) MedicationName() string {
	if r.Medication != nil && r.Medication.Name != "" {
		return r.Medication.Name
	}
	return "General Reminder"
}
