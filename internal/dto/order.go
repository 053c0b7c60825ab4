package dto

// ── 订单模块 DTO ──

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	PharmacyID    string   `json:"pharmacy_id" binding:"required"`
	MedicationIDs []string `json:"medication_ids" binding:"required,min=1"`
}

// OrderItemResponse 订单明细响应
type OrderItemResponse struct {
	ID             string  `json:"id"`
	MedicationID   string  `json:"medication_id"`
	MedicationName string  `json:"medication_name,omitempty"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
}

// OrderResponse 订单响应
type OrderResponse struct {
	ID           string              `json:"id"`
	PharmacyID   string              `json:"pharmacy_id"`
	PharmacyName string              `json:"pharmacy_name,omitempty"`
	Total        float64             `json:"total"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    string              `json:"created_at"`
}
