package service

import (
	"math"
	"time"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
)

// ── 依从率聚合 ──
// 本文件只做纯计算：输入一份服药记录快照，输出统计结果，
// 不触发任何 IO，便于单测覆盖边界情况。

// AdherenceSummary 窗口内的依从率汇总
type AdherenceSummary struct {
	Total  int // 窗口内全部剂量事件数（含 pending / skipped）
	Taken  int
	Missed int
	Rate   int // 百分比整数，四舍五入；Total=0 时为 0
}

// adherenceRate 计算 taken/total 的百分比，四舍五入取整。
// total=0 返回 0，不返回 100 —— 无数据不等于完全依从。
func adherenceRate(taken, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(taken) / float64(total) * 100))
}

// summarize 汇总一组剂量事件的依从率
func summarize(intakes []model.MedicationIntake) AdherenceSummary {
	s := AdherenceSummary{Total: len(intakes)}
	for i := range intakes {
		switch intakes[i].Status {
		case model.IntakeStatusTaken:
			s.Taken++
		case model.IntakeStatusMissed:
			s.Missed++
		}
	}
	s.Rate = adherenceRate(s.Taken, s.Total)
	return s
}

// computeDailyTrend 计算截至 reference 当日的近 numDays 天逐日依从率，
// 结果按时间升序（最旧在前），当日为最后一格。
// 日界按 loc 时区的自然日划分：[当日00:00, 次日00:00)。
func computeDailyTrend(intakes []model.MedicationIntake, reference time.Time, numDays int, loc *time.Location) []dto.DayAdherence {
	trend := make([]dto.DayAdherence, 0, numDays)
	ref := reference.In(loc)
	for offset := numDays - 1; offset >= 0; offset-- {
		day := ref.AddDate(0, 0, -offset)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var taken, total int
		for i := range intakes {
			at := intakes[i].ScheduledAt
			if at.Before(dayStart) || !at.Before(dayEnd) {
				continue
			}
			total++
			if intakes[i].Status == model.IntakeStatusTaken {
				taken++
			}
		}
		trend = append(trend, dto.DayAdherence{
			Day:       dayStart.Format("Mon"),
			Adherence: adherenceRate(taken, total),
		})
	}
	return trend
}

// computeMedicationBreakdown 计算每个药品在窗口内的依从率。
// 覆盖用户名下全部药品：窗口内无事件的药品也出现在结果中（依从率 0），
// 顺序与 medications 一致。
func computeMedicationBreakdown(intakes []model.MedicationIntake, medications []model.Medication) []dto.MedicationAdherence {
	breakdown := make([]dto.MedicationAdherence, 0, len(medications))
	for i := range medications {
		var taken, total int
		for j := range intakes {
			if intakes[j].MedicationID != medications[i].MedicationID {
				continue
			}
			total++
			if intakes[j].Status == model.IntakeStatusTaken {
				taken++
			}
		}
		breakdown = append(breakdown, dto.MedicationAdherence{
			Name:      medications[i].Name,
			Adherence: adherenceRate(taken, total),
		})
	}
	return breakdown
}
