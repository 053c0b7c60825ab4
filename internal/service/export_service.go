package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"pilltrack/backend/internal/repository"
	"pilltrack/backend/internal/scheduler"
)

// ExportService 数据导出：依从率报表（Excel）与提醒日历（iCalendar）
type ExportService struct {
	intakes     repository.IntakeRepository
	medications repository.MedicationRepository
	reminders   repository.ReminderRepository
	loc         *time.Location
}

// NewExportService 创建导出 Service
func NewExportService(
	intakes repository.IntakeRepository,
	medications repository.MedicationRepository,
	reminders repository.ReminderRepository,
	loc *time.Location,
) *ExportService {
	return &ExportService{intakes: intakes, medications: medications, reminders: reminders, loc: loc}
}

// AdherenceReport 生成用户近30天依从率 Excel 报表，返回文件内容与文件名
func (s *ExportService) AdherenceReport(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	now := time.Now().In(s.loc)
	windowStart := now.AddDate(0, 0, -adherenceWindowDays)

	intakes, err := s.intakes.ListByUserBetween(ctx, userID, windowStart, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, "", err
	}
	medications, err := s.medications.ListByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "服药记录"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "D", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("依从率报表（%s 至 %s）",
		windowStart.Format("2006-01-02"), now.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "计划时间")
	f.SetCellValue(sheetName, cell("B", row), "药品")
	f.SetCellValue(sheetName, cell("C", row), "状态")
	f.SetCellValue(sheetName, cell("D", row), "实际服用时间")

	// 数据行
	row = 3
	for i := range intakes {
		f.SetCellValue(sheetName, cell("A", row), intakes[i].ScheduledAt.In(s.loc).Format("2006-01-02 15:04"))
		name := ""
		if intakes[i].Medication != nil {
			name = intakes[i].Medication.Name
		}
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), intakes[i].Status)
		if intakes[i].TakenAt != nil {
			f.SetCellValue(sheetName, cell("D", row), intakes[i].TakenAt.In(s.loc).Format("2006-01-02 15:04"))
		} else {
			f.SetCellValue(sheetName, cell("D", row), "-")
		}
		row++
	}

	// 汇总 Sheet：总览 + 按药品拆分
	summarySheet := "汇总"
	f.NewSheet(summarySheet)
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 14)

	summary := summarize(intakes)
	f.SetCellValue(summarySheet, "A1", "总剂量")
	f.SetCellValue(summarySheet, "B1", summary.Total)
	f.SetCellValue(summarySheet, "A2", "已服用")
	f.SetCellValue(summarySheet, "B2", summary.Taken)
	f.SetCellValue(summarySheet, "A3", "漏服")
	f.SetCellValue(summarySheet, "B3", summary.Missed)
	f.SetCellValue(summarySheet, "A4", "依从率（%）")
	f.SetCellValue(summarySheet, "B4", summary.Rate)

	srow := 6
	f.SetCellValue(summarySheet, cell("A", srow), "药品")
	f.SetCellValue(summarySheet, cell("B", srow), "依从率（%）")
	srow++
	for _, item := range computeMedicationBreakdown(intakes, medications) {
		f.SetCellValue(summarySheet, cell("A", srow), item.Name)
		f.SetCellValue(summarySheet, cell("B", srow), item.Adherence)
		srow++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("生成 Excel 失败: %w", err)
	}

	filename := fmt.Sprintf("依从率报表_%s.xlsx", now.Format("20060102"))
	return buf, filename, nil
}

// byDayCodes RRULE BYDAY 星期编码（0=周日 .. 6=周六）
var byDayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// ReminderCalendar 把用户启用的提醒导出为 iCalendar 文本。
// 每个触发器生成一个带 RRULE 的重复事件，可直接导入系统日历。
func (s *ExportService) ReminderCalendar(ctx context.Context, userID string) (string, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().In(s.loc)
	for i := range reminders {
		r := &reminders[i]
		if !r.Enabled {
			continue
		}
		triggers, err := scheduler.Expand(r)
		if err != nil {
			// 库里存在无效规则时跳过，不让单条坏数据毁掉整个导出
			continue
		}

		for j, trig := range triggers {
			event := cal.AddEvent(fmt.Sprintf("%s-%d@pilltrack", r.ReminderID, j))
			event.SetDtStampTime(now)
			event.SetSummary(fmt.Sprintf("服药提醒：%s", r.MedicationName()))
			event.SetStartAt(nextOccurrence(now, trig, s.loc))
			event.AddRrule(rruleFor(trig))
		}
	}

	return cal.Serialize(), nil
}

// nextOccurrence 计算触发器在 now 之后（含当刻）最近一次触发的时间
func nextOccurrence(now time.Time, trig scheduler.Trigger, loc *time.Location) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), trig.Hour, trig.Minute, 0, 0, loc)
	if trig.Weekday == nil {
		if candidate.Before(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate
	}

	for offset := 0; offset < 8; offset++ {
		day := candidate.AddDate(0, 0, offset)
		if int(day.Weekday()) == *trig.Weekday && !day.Before(now) {
			return day
		}
	}
	return candidate
}

func rruleFor(trig scheduler.Trigger) string {
	if trig.Weekday != nil {
		return "FREQ=WEEKLY;BYDAY=" + byDayCodes[*trig.Weekday]
	}
	return "FREQ=DAILY"
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
