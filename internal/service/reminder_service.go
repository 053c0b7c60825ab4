package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
	"pilltrack/backend/internal/scheduler"
)

// ReminderService 提醒业务逻辑。
// 对提醒的每一次写操作都同步驱动调度器，保证
// "存活触发器集合 = 启用提醒集合" 这一不变量在 API 层面成立。
type ReminderService struct {
	reminders   repository.ReminderRepository
	medications repository.MedicationRepository
	sched       scheduler.Scheduler
	logger      *zap.Logger
}

// NewReminderService 创建提醒 Service
func NewReminderService(
	reminders repository.ReminderRepository,
	medications repository.MedicationRepository,
	sched scheduler.Scheduler,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{reminders: reminders, medications: medications, sched: sched, logger: logger}
}

// List 列出用户全部提醒及全局开关状态。
// 全局开关没有独立存储：只要存在任一启用的提醒即视为开。
func (s *ReminderService) List(ctx context.Context, userID string) (*dto.ReminderListResponse, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	globalEnabled, err := s.reminders.AnyEnabled(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReminderListResponse{
		Reminders:     make([]dto.ReminderResponse, 0, len(reminders)),
		GlobalEnabled: globalEnabled,
	}
	for i := range reminders {
		resp.Reminders = append(resp.Reminders, toReminderResponse(&reminders[i]))
	}
	return resp, nil
}

// Create 创建提醒并注册触发器
func (s *ReminderService) Create(ctx context.Context, userID string, req *dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	reminder := &model.Reminder{
		UserID:       userID,
		MedicationID: req.MedicationID,
		Time:         req.Time,
		Frequency:    req.Frequency,
		Enabled:      true,
		DaysOfWeek:   model.IntArray(req.DaysOfWeek),
	}
	if req.Enabled != nil {
		reminder.Enabled = *req.Enabled
	}

	// 先校验再落库：规则无效时不产生任何状态变化
	if err := s.validate(ctx, userID, reminder); err != nil {
		return nil, err
	}

	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	// 重读带出关联药品，响应中才有 medicationName
	created, err := s.reminders.GetByID(ctx, reminder.ReminderID)
	if err != nil {
		return nil, err
	}

	if err := s.sched.ScheduleReminder(created); err != nil {
		// 落库成功但注册触发器失败：提醒仍然存在，记录后由启动重建兜底
		s.logger.Error("提醒触发器注册失败",
			zap.String("reminder_id", created.ReminderID), zap.Error(err))
	}

	resp := toReminderResponse(created)
	return &resp, nil
}

// Update 更新提醒：先校验新规则，落库后取消旧触发器并按新规则重建
func (s *ReminderService) Update(ctx context.Context, userID, reminderID string, req *dto.UpdateReminderRequest) (*dto.ReminderResponse, error) {
	reminder, err := s.getOwned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	if req.MedicationID != nil {
		if *req.MedicationID == "" {
			reminder.MedicationID = nil
		} else {
			reminder.MedicationID = req.MedicationID
		}
	}
	if req.Time != nil {
		reminder.Time = *req.Time
	}
	if req.Frequency != nil {
		reminder.Frequency = *req.Frequency
	}
	if req.Enabled != nil {
		reminder.Enabled = *req.Enabled
	}
	if req.DaysOfWeek != nil {
		reminder.DaysOfWeek = model.IntArray(*req.DaysOfWeek)
	}

	if err := s.validate(ctx, userID, reminder); err != nil {
		return nil, err
	}

	if err := s.reminders.Update(ctx, reminder); err != nil {
		return nil, err
	}
	updated, err := s.reminders.GetByID(ctx, reminder.ReminderID)
	if err != nil {
		return nil, err
	}

	if err := s.sched.ScheduleReminder(updated); err != nil {
		s.logger.Error("提醒触发器重建失败",
			zap.String("reminder_id", updated.ReminderID), zap.Error(err))
	}

	resp := toReminderResponse(updated)
	return &resp, nil
}

// Delete 删除提醒。先撤销触发器再删库：
// 宁可留下无触发器的脏记录，也不留下指向已删提醒的活触发器。
func (s *ReminderService) Delete(ctx context.Context, userID, reminderID string) error {
	if _, err := s.getOwned(ctx, userID, reminderID); err != nil {
		return err
	}

	if err := s.sched.CancelReminder(reminderID); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, reminderID)
}

// UpdateSettings 全局提醒开关：批量落库用户全部提醒的 enabled，
// 然后全量重建触发器（取消全部存活触发器 + 按启用集合重建）。
func (s *ReminderService) UpdateSettings(ctx context.Context, userID string, req *dto.UpdateReminderSettingsRequest) (*dto.ReminderListResponse, error) {
	if req.GlobalEnabled == nil {
		return s.List(ctx, userID)
	}

	if err := s.reminders.SetEnabledByUser(ctx, userID, *req.GlobalEnabled); err != nil {
		return nil, err
	}

	enabled, err := s.reminders.ListAllEnabled(ctx)
	if err != nil {
		return nil, err
	}
	s.sched.ScheduleAll(enabled)

	s.logger.Info("全局提醒开关已更新",
		zap.String("user_id", userID), zap.Bool("enabled", *req.GlobalEnabled))
	return s.List(ctx, userID)
}

// validate 校验提醒规则与药品归属。
// 触发器展开使用与调度器相同的规则，保证校验口径一致。
func (s *ReminderService) validate(ctx context.Context, userID string, reminder *model.Reminder) error {
	if reminder.Frequency == model.FrequencyWeekly && len(reminder.DaysOfWeek) == 0 {
		return ErrWeeklyNeedsDays
	}
	if _, err := scheduler.Expand(reminder); err != nil {
		return err
	}

	if reminder.MedicationID != nil {
		med, err := s.medications.GetByID(ctx, *reminder.MedicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if med.UserID != userID {
			return ErrForbidden
		}
	}
	return nil
}

func (s *ReminderService) getOwned(ctx context.Context, userID, reminderID string) (*model.Reminder, error) {
	reminder, err := s.reminders.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reminder.UserID != userID {
		return nil, ErrForbidden
	}
	return reminder, nil
}

func toReminderResponse(r *model.Reminder) dto.ReminderResponse {
	days := make([]int, len(r.DaysOfWeek))
	copy(days, r.DaysOfWeek)
	return dto.ReminderResponse{
		ID:             r.ReminderID,
		MedicationID:   r.MedicationID,
		MedicationName: r.MedicationName(),
		Time:           r.Time,
		Frequency:      r.Frequency,
		Enabled:        r.Enabled,
		DaysOfWeek:     days,
	}
}
