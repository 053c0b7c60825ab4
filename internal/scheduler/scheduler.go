package scheduler

import (
	"errors"

	"go.uber.org/zap"

	"pilltrack/backend/internal/model"
	pkgerrors "pilltrack/backend/pkg/errors"
)

// Scheduler 提醒调度器。
// 维护不变量："当前存活的通知触发器集合 = 当前启用的提醒集合"。
// 每条提醒只有 Unscheduled / Scheduled 两种状态：
//   - 创建（enabled=true）、开启、全局开关打开 → Scheduled
//   - 删除、关闭、全局开关关闭 → Unscheduled
//   - 时间/频率/星期/药品变更 → 先取消再重建，绝不原地修改触发器
//
// 全量重建（ScheduleAll）以正确性换效率；接口化以便未来替换为
// 等价的增量 diff 实现。
type Scheduler interface {
	// ScheduleReminder 让单条提醒的触发器与规则一致（取消后按需重建）。
	// enabled=false 时等价于 CancelReminder。
	ScheduleReminder(reminder *model.Reminder) error
	// CancelReminder 撤销该提醒创建过的全部触发器并清除绑定
	CancelReminder(reminderID string) error
	// ScheduleAll 先取消全部存活触发器，再按列表顺序重建所有启用提醒。
	// 单条提醒失败只记录日志并跳过，不中断批次。
	ScheduleAll(reminders []model.Reminder)
}

type reminderScheduler struct {
	notifier Notifier
	bindings BindingStore
	logger   *zap.Logger
}

// New 创建提醒调度器
func New(notifier Notifier, bindings BindingStore, logger *zap.Logger) Scheduler {
	return &reminderScheduler{
		notifier: notifier,
		bindings: bindings,
		logger:   logger,
	}
}

func (s *reminderScheduler) ScheduleReminder(reminder *model.Reminder) error {
	// 1. 先校验，校验失败时不得产生任何副作用
	var triggers []Trigger
	if reminder.Enabled {
		var err error
		triggers, err = Expand(reminder)
		if err != nil {
			return err
		}
	}

	// 2. 取消旧触发器（编辑 = 取消后重建）
	if err := s.cancelHandles(reminder.ReminderID); err != nil {
		return err
	}

	if !reminder.Enabled {
		return nil
	}

	// 3. 注册新触发器
	handles := make([]Handle, 0, len(triggers))
	for _, trigger := range triggers {
		handle, err := s.notifier.Schedule(trigger, reminder)
		if err != nil {
			// 权限未授予：降级为空操作，零存活触发器，不报错
			if errors.Is(err, pkgerrors.ErrPermissionDenied) {
				s.logger.Warn("通知权限未授予，提醒未注册触发器",
					zap.String("reminder_id", reminder.ReminderID))
				s.rollback(handles)
				return nil
			}
			// 其他错误：回滚已注册的部分，避免半套触发器存活
			s.rollback(handles)
			return err
		}
		handles = append(handles, handle)
	}

	s.bindings.Put(reminder.ReminderID, handles)
	return nil
}

func (s *reminderScheduler) CancelReminder(reminderID string) error {
	return s.cancelHandles(reminderID)
}

func (s *reminderScheduler) ScheduleAll(reminders []model.Reminder) {
	// 全量取消先于全量重建，避免同一提醒新旧触发器并存的窗口
	if err := s.notifier.CancelAll(); err != nil {
		s.logger.Error("全量取消触发器失败", zap.Error(err))
	}
	s.bindings.Clear()

	for i := range reminders {
		r := &reminders[i]
		if !r.Enabled {
			continue
		}
		if err := s.ScheduleReminder(r); err != nil {
			// 单条失败不中断批次
			s.logger.Error("重建提醒触发器失败，跳过",
				zap.String("reminder_id", r.ReminderID),
				zap.Error(err))
		}
	}
}

// cancelHandles 撤销绑定中记录的全部句柄并清除绑定条目
func (s *reminderScheduler) cancelHandles(reminderID string) error {
	handles := s.bindings.Get(reminderID)
	for _, handle := range handles {
		if err := s.notifier.Cancel(handle); err != nil {
			return err
		}
	}
	s.bindings.Remove(reminderID)
	return nil
}

// rollback 撤销本次调用中已注册的句柄
func (s *reminderScheduler) rollback(handles []Handle) {
	for _, handle := range handles {
		if err := s.notifier.Cancel(handle); err != nil {
			s.logger.Error("回滚触发器失败", zap.String("handle", string(handle)), zap.Error(err))
		}
	}
}
