package service

import (
	"context"
	"fmt"
	"time"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
)

// upcomingWindow 仪表盘"即将服用"展示未来多长时间内的剂量
const upcomingWindow = 24 * time.Hour

// DashboardService 仪表盘业务逻辑
type DashboardService struct {
	intakes     repository.IntakeRepository
	medications repository.MedicationRepository
	loc         *time.Location
}

// NewDashboardService 创建仪表盘 Service
func NewDashboardService(
	intakes repository.IntakeRepository,
	medications repository.MedicationRepository,
	loc *time.Location,
) *DashboardService {
	return &DashboardService{intakes: intakes, medications: medications, loc: loc}
}

// Get 汇总仪表盘数据：即将服用、告警、30天依从率概览
func (s *DashboardService) Get(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	now := time.Now().In(s.loc)

	// 未来24小时内待服用的剂量
	upcoming, err := s.intakes.ListUpcomingPending(ctx, userID, now, now.Add(upcomingWindow))
	if err != nil {
		return nil, err
	}
	upcomingDoses := make([]dto.UpcomingDose, 0, len(upcoming))
	for i := range upcoming {
		name := ""
		dosage := ""
		if upcoming[i].Medication != nil {
			name = upcoming[i].Medication.Name
			dosage = upcoming[i].Medication.Dosage
		}
		upcomingDoses = append(upcomingDoses, dto.UpcomingDose{
			MedicationName: name,
			Time:           upcoming[i].ScheduledAt.In(s.loc).Format("15:04"),
			Dosage:         dosage,
		})
	}

	alerts, err := s.buildAlerts(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	// 30天窗口依从率概览（与统计页同一口径）
	windowStart := now.AddDate(0, 0, -adherenceWindowDays)
	intakes, err := s.intakes.ListByUserSince(ctx, userID, windowStart)
	if err != nil {
		return nil, err
	}
	summary := summarize(intakes)

	return &dto.DashboardResponse{
		UpcomingDoses: upcomingDoses,
		Alerts:        alerts,
		AdherenceRate: summary.Rate,
		TakenDoses:    summary.Taken,
		MissedDoses:   summary.Missed,
	}, nil
}

func (s *DashboardService) buildAlerts(ctx context.Context, userID string, now time.Time) ([]dto.Alert, error) {
	alerts := make([]dto.Alert, 0, 4)

	// 低库存告警
	lowStock, err := s.medications.ListLowStock(ctx, userID, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	for i := range lowStock {
		alerts = append(alerts, dto.Alert{
			Type:    "warning",
			Message: fmt.Sprintf("%s 库存不足（剩余 %d）", lowStock[i].Name, lowStock[i].Stock),
		})
	}

	// 当日漏服告警
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	today, err := s.intakes.ListByUserBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	var missedToday int
	for i := range today {
		if today[i].Status == model.IntakeStatusMissed {
			missedToday++
		}
	}
	if missedToday > 0 {
		alerts = append(alerts, dto.Alert{
			Type:    "warning",
			Message: fmt.Sprintf("今日有 %d 剂漏服", missedToday),
		})
	}

	return alerts, nil
}
