package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
)

// PharmacyService 药房业务逻辑
type PharmacyService struct {
	pharmacies repository.PharmacyRepository
}

// NewPharmacyService 创建药房 Service
func NewPharmacyService(pharmacies repository.PharmacyRepository) *PharmacyService {
	return &PharmacyService{pharmacies: pharmacies}
}

// List 列出全部药房
func (s *PharmacyService) List(ctx context.Context) ([]dto.PharmacyResponse, error) {
	pharmacies, err := s.pharmacies.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PharmacyResponse, 0, len(pharmacies))
	for i := range pharmacies {
		resp = append(resp, toPharmacyResponse(&pharmacies[i]))
	}
	return resp, nil
}

// Get 获取单个药房
func (s *PharmacyService) Get(ctx context.Context, id string) (*dto.PharmacyResponse, error) {
	pharmacy, err := s.pharmacies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toPharmacyResponse(pharmacy)
	return &resp, nil
}

func toPharmacyResponse(p *model.Pharmacy) dto.PharmacyResponse {
	return dto.PharmacyResponse{
		ID:      p.PharmacyID,
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Open:    p.IsOpen,
		// 未接入定位服务，距离为固定模拟值
		Distance: "0.5 km",
	}
}
