package service

import (
	"context"
	"time"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/repository"
)

// ── 统计窗口常量 ──

const (
	adherenceWindowDays = 30 // 滚动统计窗口
	trendDays           = 7  // 逐日趋势长度
)

// AnalyticsService 依从率统计业务逻辑。
// 每次请求重新读取窗口快照计算，不做增量缓存；
// 数据量上限为单用户30天的剂量事件，全量计算足够快。
type AnalyticsService struct {
	intakes     repository.IntakeRepository
	medications repository.MedicationRepository
	loc         *time.Location
}

// NewAnalyticsService 创建统计 Service
func NewAnalyticsService(
	intakes repository.IntakeRepository,
	medications repository.MedicationRepository,
	loc *time.Location,
) *AnalyticsService {
	return &AnalyticsService{intakes: intakes, medications: medications, loc: loc}
}

// Get 计算用户的依从率统计：30天总览 + 近7天趋势 + 按药品拆分
func (s *AnalyticsService) Get(ctx context.Context, userID string) (*dto.AnalyticsResponse, error) {
	now := time.Now().In(s.loc)
	windowStart := now.AddDate(0, 0, -adherenceWindowDays)

	intakes, err := s.intakes.ListByUserSince(ctx, userID, windowStart)
	if err != nil {
		return nil, err
	}
	medications, err := s.medications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := summarize(intakes)
	return &dto.AnalyticsResponse{
		AdherenceRate:       summary.Rate,
		TotalDoses:          summary.Total,
		TakenDoses:          summary.Taken,
		MissedDoses:         summary.Missed,
		WeeklyData:          computeDailyTrend(intakes, now, trendDays, s.loc),
		MedicationBreakdown: computeMedicationBreakdown(intakes, medications),
	}, nil
}
