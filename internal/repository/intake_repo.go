package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pilltrack/backend/internal/model"
)

// IntakeRepository 服药记录数据访问接口
type IntakeRepository interface {
	Create(ctx context.Context, intake *model.MedicationIntake) error
	GetByID(ctx context.Context, id string) (*model.MedicationIntake, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]model.MedicationIntake, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error)
	ListUpcomingPending(ctx context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error)
	Update(ctx context.Context, intake *model.MedicationIntake) error
	MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type intakeRepo struct {
	db *gorm.DB
}

func NewIntakeRepo(db *gorm.DB) IntakeRepository {
	return &intakeRepo{db: db}
}

func (r *intakeRepo) Create(ctx context.Context, intake *model.MedicationIntake) error {
	return r.db.WithContext(ctx).Create(intake).Error
}

func (r *intakeRepo) GetByID(ctx context.Context, id string) (*model.MedicationIntake, error) {
	var intake model.MedicationIntake
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("intake_id = ?", id).
		First(&intake).Error
	if err != nil {
		return nil, err
	}
	return &intake, nil
}

// ListByUserSince 列出用户自 since 起的全部服药记录（聚合统计的输入快照）
func (r *intakeRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_at >= ?", userID, since).
		Order("scheduled_at ASC").
		Find(&intakes).Error
	return intakes, err
}

func (r *intakeRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("user_id = ? AND scheduled_at >= ? AND scheduled_at < ?", userID, from, to).
		Order("scheduled_at ASC").
		Find(&intakes).Error
	return intakes, err
}

// ListUpcomingPending 列出时间窗内状态为 pending 的服药记录（仪表盘"即将服用"）
func (r *intakeRepo) ListUpcomingPending(ctx context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Where("user_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at <= ?",
			userID, model.IntakeStatusPending, from, to).
		Order("scheduled_at ASC").
		Find(&intakes).Error
	return intakes, err
}

func (r *intakeRepo) Update(ctx context.Context, intake *model.MedicationIntake) error {
	return r.db.WithContext(ctx).Save(intake).Error
}

// MarkMissedBefore 将计划时间早于 cutoff 且仍为 pending 的记录批量标记为 missed（后台巡检）
func (r *intakeRepo) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.MedicationIntake{}).
		Where("status = ? AND scheduled_at < ?", model.IntakeStatusPending, cutoff).
		Update("status", model.IntakeStatusMissed)
	return result.RowsAffected, result.Error
}
