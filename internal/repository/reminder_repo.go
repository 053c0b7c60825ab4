package repository

import (
	"context"

	"gorm.io/gorm"

	"pilltrack/backend/internal/model"
)

// ReminderRepository 提醒规则数据访问接口
type ReminderRepository interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	GetByID(ctx context.Context, id string) (*model.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]model.Reminder, error)
	ListAllEnabled(ctx context.Context) ([]model.Reminder, error)
	Update(ctx context.Context, reminder *model.Reminder) error
	Delete(ctx context.Context, id string) error
	SetEnabledByUser(ctx context.Context, userID string, enabled bool) error
	AnyEnabled(ctx context.Context, userID string) (bool, error)
}

type reminderRepo struct {
	db *gorm.DB
}

func NewReminderRepo(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("reminder_id = ?", id).
		First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepo) ListByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&reminders).Error
	return reminders, err
}

// ListAllEnabled 列出全部启用的提醒（跨用户，用于启动时重建触发器）
func (r *reminderRepo) ListAllEnabled(ctx context.Context) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("enabled = ?", true).
		Order("created_at ASC").
		Find(&reminders).Error
	return reminders, err
}

func (r *reminderRepo) Update(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("reminder_id = ?", id).Delete(&model.Reminder{}).Error
}

// SetEnabledByUser 批量设置用户全部提醒的启用状态（全局开关落库方式）
func (r *reminderRepo) SetEnabledByUser(ctx context.Context, userID string, enabled bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}

// AnyEnabled 用户是否存在任一启用的提醒（全局开关的读取口径）
func (r *reminderRepo) AnyEnabled(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("user_id = ? AND enabled = ?", userID, true).
		Count(&count).Error
	return count > 0, err
}
