package model

// ── 支付方式枚举 ──

const (
	PaymentMethodCard     = "card"
	PaymentMethodPaypal   = "paypal"
	PaymentMethodApplePay = "apple_pay"
)

// Payment 支付记录表 — 对应 payments（模拟支付网关，状态直接 completed）
type Payment struct {
	PaymentID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`
	OrderID       string  `gorm:"type:uuid;not null;index"                       json:"order_id"`
	Method        string  `gorm:"type:varchar(20);not null"                      json:"method"` // card | paypal | apple_pay
	Amount        float64 `gorm:"type:decimal(10,2);not null"                    json:"amount"`
	Status        string  `gorm:"type:varchar(20);not null"                      json:"status"`
	TransactionID string  `gorm:"type:varchar(64);not null"                      json:"transaction_id"`
	BaseModel
}

// TableName 指定表名
func (Payment) TableName() string { return "payments" }
