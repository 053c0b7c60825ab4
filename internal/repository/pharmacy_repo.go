package repository

import (
	"context"

	"gorm.io/gorm"

	"pilltrack/backend/internal/model"
)

// PharmacyRepository 药房数据访问接口
type PharmacyRepository interface {
	GetByID(ctx context.Context, id string) (*model.Pharmacy, error)
	List(ctx context.Context) ([]model.Pharmacy, error)
}

type pharmacyRepo struct {
	db *gorm.DB
}

func NewPharmacyRepo(db *gorm.DB) PharmacyRepository {
	return &pharmacyRepo{db: db}
}

func (r *pharmacyRepo) GetByID(ctx context.Context, id string) (*model.Pharmacy, error) {
	var pharmacy model.Pharmacy
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", id).First(&pharmacy).Error
	if err != nil {
		return nil, err
	}
	return &pharmacy, nil
}

func (r *pharmacyRepo) List(ctx context.Context) ([]model.Pharmacy, error) {
	var pharmacies []model.Pharmacy
	err := r.db.WithContext(ctx).Order("name ASC").Find(&pharmacies).Error
	return pharmacies, err
}
