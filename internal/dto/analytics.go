package dto

// ── 统计分析模块 DTO ──
// 字段命名沿用移动端既有契约（camelCase）

// DayAdherence 单日依从率（周趋势中的一格）
type DayAdherence struct {
	Day       string `json:"day"` // 星期简称，如 "Mon"
	Adherence int    `json:"adherence"`
}

// MedicationAdherence 单药品依从率
type MedicationAdherence struct {
	Name      string `json:"name"`
	Adherence int    `json:"adherence"`
}

// AnalyticsResponse 统计分析响应（滚动30天窗口 + 近7天趋势）
type AnalyticsResponse struct {
	AdherenceRate       int                   `json:"adherenceRate"`
	TotalDoses          int                   `json:"totalDoses"`
	TakenDoses          int                   `json:"takenDoses"`
	MissedDoses         int                   `json:"missedDoses"`
	WeeklyData          []DayAdherence        `json:"weeklyData"`
	MedicationBreakdown []MedicationAdherence `json:"medicationBreakdown"`
}
