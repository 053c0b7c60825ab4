package repository

import (
	"context"

	"gorm.io/gorm"

	"pilltrack/backend/internal/model"
)

// MedicationRepository 药品数据访问接口
type MedicationRepository interface {
	Create(ctx context.Context, med *model.Medication) error
	GetByID(ctx context.Context, id string) (*model.Medication, error)
	GetByBarcode(ctx context.Context, userID, barcode string) (*model.Medication, error)
	ListByUser(ctx context.Context, userID string) ([]model.Medication, error)
	ListLowStock(ctx context.Context, userID string, threshold int) ([]model.Medication, error)
	Update(ctx context.Context, med *model.Medication) error
	Delete(ctx context.Context, id string) error
}

type medicationRepo struct {
	db *gorm.DB
}

func NewMedicationRepo(db *gorm.DB) MedicationRepository {
	return &medicationRepo{db: db}
}

func (r *medicationRepo) Create(ctx context.Context, med *model.Medication) error {
	return r.db.WithContext(ctx).Create(med).Error
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (*model.Medication, error) {
	var med model.Medication
	err := r.db.WithContext(ctx).Where("medication_id = ?", id).First(&med).Error
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepo) GetByBarcode(ctx context.Context, userID, barcode string) (*model.Medication, error) {
	var med model.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND barcode = ?", userID, barcode).
		First(&med).Error
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepo) ListByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	var meds []model.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meds).Error
	return meds, err
}

func (r *medicationRepo) ListLowStock(ctx context.Context, userID string, threshold int) ([]model.Medication, error) {
	var meds []model.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND stock <= ? AND stock > 0", userID, threshold).
		Find(&meds).Error
	return meds, err
}

func (r *medicationRepo) Update(ctx context.Context, med *model.Medication) error {
	return r.db.WithContext(ctx).Save(med).Error
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("medication_id = ?", id).Delete(&model.Medication{}).Error
}
