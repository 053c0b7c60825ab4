package dto

// ── 仪表盘模块 DTO ──
// 字段命名沿用移动端既有契约（camelCase）

// UpcomingDose 即将服用的一剂
type UpcomingDose struct {
	MedicationName string `json:"medicationName"`
	Time           string `json:"time"` // HH:MM
	Dosage         string `json:"dosage"`
}

// Alert 仪表盘提示（低库存、当日漏服等）
type Alert struct {
	Type    string `json:"type"` // warning | info
	Message string `json:"message"`
}

// DashboardResponse 仪表盘响应
type DashboardResponse struct {
	UpcomingDoses []UpcomingDose `json:"upcomingDoses"`
	Alerts        []Alert        `json:"alerts"`
	AdherenceRate int            `json:"adherenceRate"`
	TakenDoses    int            `json:"takenDoses"`
	MissedDoses   int            `json:"missedDoses"`
}
