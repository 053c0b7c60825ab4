package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
	"pilltrack/backend/internal/repository"
)

// lowStockThreshold 库存告警阈值：0 < stock <= 5 视为需要补货
const lowStockThreshold = 5

// MedicationService 药品业务逻辑
type MedicationService struct {
	medications repository.MedicationRepository
	logger      *zap.Logger
}

// NewMedicationService 创建药品 Service
func NewMedicationService(medications repository.MedicationRepository, logger *zap.Logger) *MedicationService {
	return &MedicationService{medications: medications, logger: logger}
}

// List 列出用户全部药品
func (s *MedicationService) List(ctx context.Context, userID string) ([]dto.MedicationResponse, error) {
	meds, err := s.medications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MedicationResponse, 0, len(meds))
	for i := range meds {
		resp = append(resp, toMedicationResponse(&meds[i]))
	}
	return resp, nil
}

// Get 获取单个药品（校验归属）
func (s *MedicationService) Get(ctx context.Context, userID, medicationID string) (*dto.MedicationResponse, error) {
	med, err := s.getOwned(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}
	resp := toMedicationResponse(med)
	return &resp, nil
}

// Create 创建药品
func (s *MedicationService) Create(ctx context.Context, userID string, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	med := &model.Medication{
		UserID:       userID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Schedule:     req.Schedule,
		Notes:        req.Notes,
		Barcode:      req.Barcode,
		SideEffects:  req.SideEffects,
		Warnings:     req.Warnings,
		Interactions: req.Interactions,
	}
	if req.Stock != nil {
		med.Stock = *req.Stock
	}
	if err := s.medications.Create(ctx, med); err != nil {
		return nil, err
	}
	s.logger.Info("药品创建成功", zap.String("medication_id", med.MedicationID), zap.String("user_id", userID))
	resp := toMedicationResponse(med)
	return &resp, nil
}

// Update 更新药品（仅覆盖请求中出现的字段）
func (s *MedicationService) Update(ctx context.Context, userID, medicationID string, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	med, err := s.getOwned(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		med.Name = *req.Name
	}
	if req.Dosage != nil {
		med.Dosage = *req.Dosage
	}
	if req.Schedule != nil {
		med.Schedule = *req.Schedule
	}
	if req.Stock != nil {
		med.Stock = *req.Stock
	}
	if req.Notes != nil {
		med.Notes = *req.Notes
	}
	if req.Barcode != nil {
		med.Barcode = *req.Barcode
	}
	if req.SideEffects != nil {
		med.SideEffects = *req.SideEffects
	}
	if req.Warnings != nil {
		med.Warnings = *req.Warnings
	}
	if req.Interactions != nil {
		med.Interactions = *req.Interactions
	}
	if req.NeedsRefill != nil {
		med.NeedsRefill = *req.NeedsRefill
	}

	if err := s.medications.Update(ctx, med); err != nil {
		return nil, err
	}
	resp := toMedicationResponse(med)
	return &resp, nil
}

// Delete 删除药品
func (s *MedicationService) Delete(ctx context.Context, userID, medicationID string) error {
	if _, err := s.getOwned(ctx, userID, medicationID); err != nil {
		return err
	}
	return s.medications.Delete(ctx, medicationID)
}

// Scan 条码识别。条码已关联用户药品时返回该药品；
// 否则返回模拟识别结果（未接入真实药品数据库）。
func (s *MedicationService) Scan(ctx context.Context, userID string, req *dto.ScanRequest) (*dto.MedicationResponse, error) {
	med, err := s.medications.GetByBarcode(ctx, userID, req.Barcode)
	if err == nil {
		resp := toMedicationResponse(med)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &dto.MedicationResponse{
		Name:    "Sample Medication",
		Dosage:  "500mg",
		Barcode: req.Barcode,
	}, nil
}

func (s *MedicationService) getOwned(ctx context.Context, userID, medicationID string) (*model.Medication, error) {
	med, err := s.medications.GetByID(ctx, medicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if med.UserID != userID {
		return nil, ErrForbidden
	}
	return med, nil
}

func toMedicationResponse(m *model.Medication) dto.MedicationResponse {
	return dto.MedicationResponse{
		ID:           m.MedicationID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Schedule:     m.Schedule,
		Stock:        m.Stock,
		Notes:        m.Notes,
		Barcode:      m.Barcode,
		SideEffects:  m.SideEffects,
		Warnings:     m.Warnings,
		Interactions: m.Interactions,
		NeedsRefill:  m.NeedsRefill,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}
