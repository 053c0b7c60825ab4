package dto

// ── 药房模块 DTO ──

// PharmacyResponse 药房信息响应
type PharmacyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Open     bool   `json:"open"`
	Distance string `json:"distance"` // 模拟距离，未接入真实定位
}
