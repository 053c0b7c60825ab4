package dto

// ── 支付模块 DTO ──

// ProcessPaymentRequest 支付请求（模拟支付网关）
type ProcessPaymentRequest struct {
	OrderID       string            `json:"order_id" binding:"required"`
	PaymentMethod string            `json:"payment_method" binding:"required,oneof=card paypal apple_pay"`
	CardData      map[string]string `json:"card_data"` // method=card 时必填，内容不落库
}

// PaymentResponse 支付结果响应
type PaymentResponse struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"order_id"`
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
}
