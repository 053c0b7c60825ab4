package model

// Medication 药品表 — 对应 medications
// 每条药品归属于唯一用户；stock 仅手动维护（标记服药不自动扣减）。
type Medication struct {
	MedicationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"medication_id"`
	UserID       string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Name         string `gorm:"type:varchar(255);not null"                     json:"name"`
	Dosage       string `gorm:"type:varchar(255)"                              json:"dosage,omitempty"`
	Schedule     string `gorm:"type:text"                                      json:"schedule,omitempty"` // 自由文本服药说明
	Stock        int    `gorm:"not null;default:0"                             json:"stock"`
	Notes        string `gorm:"type:text"                                      json:"notes,omitempty"`
	Barcode      string `gorm:"type:varchar(64)"                               json:"barcode,omitempty"`
	SideEffects  string `gorm:"type:text"                                      json:"side_effects,omitempty"`
	Warnings     string `gorm:"type:text"                                      json:"warnings,omitempty"`
	Interactions string `gorm:"type:text"                                      json:"interactions,omitempty"`
	NeedsRefill  bool   `gorm:"not null;default:false"                         json:"needs_refill"`
	BaseModel
}

// TableName 指定表名
func (Medication) TableName() string { return "medications" }
