package model

// Pharmacy 药房表 — 对应 pharmacies
type Pharmacy struct {
	PharmacyID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pharmacy_id"`
	Name        string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Address     string  `gorm:"type:varchar(500)"                              json:"address,omitempty"`
	Phone       string  `gorm:"type:varchar(50)"                               json:"phone,omitempty"`
	Email       string  `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Latitude    float64 `gorm:"type:decimal(11,8)"                             json:"latitude"`
	Longitude   float64 `gorm:"type:decimal(11,8)"                             json:"longitude"`
	IsOpen      bool    `gorm:"not null;default:true"                          json:"is_open"`
	OpeningTime string  `gorm:"type:varchar(5)"                                json:"opening_time,omitempty"` // HH:MM
	ClosingTime string  `gorm:"type:varchar(5)"                                json:"closing_time,omitempty"` // HH:MM
	BaseModel
}

// TableName 指定表名
func (Pharmacy) TableName() string { return "pharmacies" }
