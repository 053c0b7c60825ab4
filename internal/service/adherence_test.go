package service

import (
	"testing"
	"time"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
)

func intakeAt(medID, status string, at time.Time) model.MedicationIntake {
	return model.MedicationIntake{
		UserID:       "user-1",
		MedicationID: medID,
		ScheduledAt:  at,
		Status:       status,
	}
}

func TestAdherenceRate(t *testing.T) {
	tests := []struct {
		name  string
		taken int
		total int
		want  int
	}{
		{"零事件返回0", 0, 0, 0},
		{"全部服用", 10, 10, 100},
		{"一半服用", 5, 10, 50},
		{"三分之二四舍五入", 2, 3, 67},
		{"三分之一四舍五入", 1, 3, 33},
		{"全部漏服", 0, 8, 0},
		{"二分之一向上取整", 1, 2, 50},
		{"八分之七", 7, 8, 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adherenceRate(tt.taken, tt.total)
			if got != tt.want {
				t.Errorf("adherenceRate(%d, %d) 期望 %d，实际=%d", tt.taken, tt.total, tt.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	intakes := []model.MedicationIntake{
		intakeAt("med-1", model.IntakeStatusTaken, now),
		intakeAt("med-1", model.IntakeStatusTaken, now),
		intakeAt("med-1", model.IntakeStatusMissed, now),
		intakeAt("med-2", model.IntakeStatusPending, now),
		intakeAt("med-2", model.IntakeStatusSkipped, now),
	}

	s := summarize(intakes)
	if s.Total != 5 {
		t.Errorf("Total 期望 5，实际=%d", s.Total)
	}
	if s.Taken != 2 {
		t.Errorf("Taken 期望 2，实际=%d", s.Taken)
	}
	if s.Missed != 1 {
		t.Errorf("Missed 期望 1，实际=%d", s.Missed)
	}
	// pending 与 skipped 计入分母：2/5 = 40%
	if s.Rate != 40 {
		t.Errorf("Rate 期望 40，实际=%d", s.Rate)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)
	if s.Rate != 0 || s.Total != 0 {
		t.Errorf("空快照期望全零，实际=%+v", s)
	}
}

func TestComputeDailyTrend(t *testing.T) {
	loc := time.UTC
	// 2026-08-31 是周一
	reference := time.Date(2026, 8, 31, 18, 0, 0, 0, loc)

	intakes := []model.MedicationIntake{
		// 当日（周一）：2/2
		intakeAt("med-1", model.IntakeStatusTaken, time.Date(2026, 8, 31, 8, 0, 0, 0, loc)),
		intakeAt("med-1", model.IntakeStatusTaken, time.Date(2026, 8, 31, 20, 0, 0, 0, loc)),
		// 前一日（周日）：1/2
		intakeAt("med-1", model.IntakeStatusTaken, time.Date(2026, 8, 30, 8, 0, 0, 0, loc)),
		intakeAt("med-1", model.IntakeStatusMissed, time.Date(2026, 8, 30, 20, 0, 0, 0, loc)),
		// 六天前（周二）：0/1
		intakeAt("med-1", model.IntakeStatusMissed, time.Date(2026, 8, 25, 8, 0, 0, 0, loc)),
		// 窗口外（八天前），不应计入
		intakeAt("med-1", model.IntakeStatusTaken, time.Date(2026, 8, 23, 8, 0, 0, 0, loc)),
	}

	trend := computeDailyTrend(intakes, reference, 7, loc)
	if len(trend) != 7 {
		t.Fatalf("趋势长度期望 7，实际=%d", len(trend))
	}

	// 最旧在前：第一格是周二（6天前），最后一格是当日周一
	if trend[0].Day != "Tue" {
		t.Errorf("首格星期期望 Tue，实际=%s", trend[0].Day)
	}
	if trend[6].Day != "Mon" {
		t.Errorf("末格星期期望 Mon，实际=%s", trend[6].Day)
	}

	if trend[0].Adherence != 0 {
		t.Errorf("周二依从率期望 0，实际=%d", trend[0].Adherence)
	}
	if trend[5].Adherence != 50 {
		t.Errorf("周日依从率期望 50，实际=%d", trend[5].Adherence)
	}
	if trend[6].Adherence != 100 {
		t.Errorf("周一依从率期望 100，实际=%d", trend[6].Adherence)
	}

	// 无事件的日子依从率为 0
	if trend[1].Adherence != 0 {
		t.Errorf("无事件日依从率期望 0，实际=%d", trend[1].Adherence)
	}
}

func TestComputeDailyTrend_DayBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skip("时区数据不可用")
	}
	reference := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)

	// UTC 2026-08-30 17:00 = 上海 2026-08-31 01:00，应计入当日
	intakes := []model.MedicationIntake{
		intakeAt("med-1", model.IntakeStatusTaken, time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC)),
	}

	trend := computeDailyTrend(intakes, reference, 7, loc)
	if trend[6].Adherence != 100 {
		t.Errorf("跨时区日界归属错误：当日依从率期望 100，实际=%d", trend[6].Adherence)
	}
	if trend[5].Adherence != 0 {
		t.Errorf("前一日不应有事件，依从率期望 0，实际=%d", trend[5].Adherence)
	}
}

func TestComputeMedicationBreakdown(t *testing.T) {
	now := time.Now()
	medications := []model.Medication{
		{MedicationID: "med-1", Name: "阿司匹林"},
		{MedicationID: "med-2", Name: "维生素D"},
		{MedicationID: "med-3", Name: "布洛芬"}, // 窗口内无事件
	}
	intakes := []model.MedicationIntake{
		intakeAt("med-1", model.IntakeStatusTaken, now),
		intakeAt("med-1", model.IntakeStatusTaken, now),
		intakeAt("med-1", model.IntakeStatusMissed, now),
		intakeAt("med-2", model.IntakeStatusMissed, now),
	}

	breakdown := computeMedicationBreakdown(intakes, medications)
	if len(breakdown) != 3 {
		t.Fatalf("拆分长度期望 3（覆盖全部药品），实际=%d", len(breakdown))
	}

	want := []dto.MedicationAdherence{
		{Name: "阿司匹林", Adherence: 67},
		{Name: "维生素D", Adherence: 0},
		{Name: "布洛芬", Adherence: 0},
	}
	for i := range want {
		if breakdown[i] != want[i] {
			t.Errorf("第%d项期望 %+v，实际=%+v", i, want[i], breakdown[i])
		}
	}
}
