package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
)

// IntakeService 服药记录业务逻辑
type IntakeService struct {
	intakes       repository.IntakeRepository
	notifications repository.NotificationRepository
	missedAfter   time.Duration
	loc           *time.Location
	logger        *zap.Logger
}

// NewIntakeService 创建服药记录 Service
func NewIntakeService(
	intakes repository.IntakeRepository,
	notifications repository.NotificationRepository,
	missedAfter time.Duration,
	loc *time.Location,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		intakes:       intakes,
		notifications: notifications,
		missedAfter:   missedAfter,
		loc:           loc,
		logger:        logger,
	}
}

// ListByDate 列出用户某个自然日（本地时区）的服药记录。
// date 为空表示当日，格式 2006-01-02。
func (s *IntakeService) ListByDate(ctx context.Context, userID, date string) ([]dto.IntakeResponse, error) {
	day := time.Now().In(s.loc)
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	intakes, err := s.intakes.ListByUserBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.IntakeResponse, 0, len(intakes))
	for i := range intakes {
		resp = append(resp, toIntakeResponse(&intakes[i]))
	}
	return resp, nil
}

// UpdateStatus 标记服药状态（taken / skipped）。
// 不变量：taken_at 非空 当且仅当 status=taken。
func (s *IntakeService) UpdateStatus(ctx context.Context, userID, intakeID, status string) (*dto.IntakeResponse, error) {
	intake, err := s.intakes.GetByID(ctx, intakeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if intake.UserID != userID {
		return nil, ErrForbidden
	}

	switch status {
	case model.IntakeStatusTaken:
		now := time.Now()
		intake.Status = model.IntakeStatusTaken
		intake.TakenAt = &now
	case model.IntakeStatusSkipped:
		intake.Status = model.IntakeStatusSkipped
		intake.TakenAt = nil
	default:
		return nil, ErrInvalidStatus
	}

	if err := s.intakes.Update(ctx, intake); err != nil {
		return nil, err
	}
	resp := toIntakeResponse(intake)
	return &resp, nil
}

// RecordTrigger 触发器到点回调：物化一条 pending 剂量事件并生成通知。
// 通用提醒（无关联药品）只生成通知。
func (s *IntakeService) RecordTrigger(ctx context.Context, reminder model.Reminder, firedAt time.Time) {
	var intakeID *string
	if reminder.MedicationID != nil {
		intake := &model.MedicationIntake{
			UserID:       reminder.UserID,
			MedicationID: *reminder.MedicationID,
			ReminderID:   &reminder.ReminderID,
			ScheduledAt:  firedAt,
			Status:       model.IntakeStatusPending,
		}
		if err := s.intakes.Create(ctx, intake); err != nil {
			s.logger.Error("剂量事件写入失败",
				zap.String("reminder_id", reminder.ReminderID), zap.Error(err))
		} else {
			intakeID = &intake.IntakeID
		}
	}

	notification := &model.Notification{
		UserID:     reminder.UserID,
		Title:      "用药提醒",
		Content:    fmt.Sprintf("该服用 %s 了", reminder.MedicationName()),
		ReminderID: &reminder.ReminderID,
		IntakeID:   intakeID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("提醒通知写入失败",
			zap.String("reminder_id", reminder.ReminderID), zap.Error(err))
	}
}

// SweepMissed 漏服巡检：把超过宽限期仍为 pending 的剂量事件批量标记为 missed
func (s *IntakeService) SweepMissed(ctx context.Context) {
	cutoff := time.Now().Add(-s.missedAfter)
	affected, err := s.intakes.MarkMissedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("漏服巡检失败", zap.Error(err))
		return
	}
	if affected > 0 {
		s.logger.Info("漏服巡检完成", zap.Int64("marked_missed", affected))
	}
}

func toIntakeResponse(in *model.MedicationIntake) dto.IntakeResponse {
	resp := dto.IntakeResponse{
		ID:           in.IntakeID,
		MedicationID: in.MedicationID,
		ScheduledAt:  in.ScheduledAt.Format(time.RFC3339),
		Status:       in.Status,
	}
	if in.Medication != nil {
		resp.MedicationName = in.Medication.Name
	}
	if in.TakenAt != nil {
		resp.TakenAt = in.TakenAt.Format(time.RFC3339)
	}
	return resp
}
