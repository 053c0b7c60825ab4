package model

// ── 订单状态枚举 ──

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order 药房订单表 — 对应 orders（模拟下单流程）
type Order struct {
	OrderID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_id"`
	UserID     string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	PharmacyID string  `gorm:"type:uuid;not null"                             json:"pharmacy_id"`
	Total      float64 `gorm:"type:decimal(10,2);not null;default:0"          json:"total"`
	Status     string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Pharmacy *Pharmacy   `gorm:"foreignKey:PharmacyID;references:PharmacyID" json:"pharmacy,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID"                          json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }

// OrderItem 订单明细表 — 对应 order_items
type OrderItem struct {
	OrderItemID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_item_id"`
	OrderID      string  `gorm:"type:uuid;not null;index"                       json:"order_id"`
	MedicationID string  `gorm:"type:uuid;not null"                             json:"medication_id"`
	Quantity     int     `gorm:"not null;default:1"                             json:"quantity"`
	Price        float64 `gorm:"type:decimal(10,2);not null"                    json:"price"`
	BaseModel

	// 关联
	Medication *Medication `gorm:"foreignKey:MedicationID;references:MedicationID" json:"medication,omitempty"`
}

// TableName 指定表名
func (OrderItem) TableName() string { return "order_items" }
