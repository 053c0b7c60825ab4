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

// mockItemPrice 模拟单价：未接入药房商品目录，每件固定 50.00
const mockItemPrice = 50.00

// OrderService 订单业务逻辑（模拟下单流程）
type OrderService struct {
	orders      repository.OrderRepository
	medications repository.MedicationRepository
	pharmacies  repository.PharmacyRepository
	logger      *zap.Logger
}

// NewOrderService 创建订单 Service
func NewOrderService(
	orders repository.OrderRepository,
	medications repository.MedicationRepository,
	pharmacies repository.PharmacyRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{orders: orders, medications: medications, pharmacies: pharmacies, logger: logger}
}

// Create 创建订单：校验药房与药品归属后，订单与明细在同一事务落库
func (s *OrderService) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if _, err := s.pharmacies.GetByID(ctx, req.PharmacyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(req.MedicationIDs))
	var total float64
	for _, medID := range req.MedicationIDs {
		med, err := s.medications.GetByID(ctx, medID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if med.UserID != userID {
			return nil, ErrForbidden
		}
		items = append(items, model.OrderItem{
			MedicationID: medID,
			Quantity:     1,
			Price:        mockItemPrice,
		})
		total += mockItemPrice
	}

	order := &model.Order{
		UserID:     userID,
		PharmacyID: req.PharmacyID,
		Total:      total,
		Status:     model.OrderStatusPending,
	}
	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	s.logger.Info("订单创建成功",
		zap.String("order_id", order.OrderID), zap.Float64("total", total))

	created, err := s.orders.GetByID(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(created)
	return &resp, nil
}

// List 列出用户全部订单
func (s *OrderService) List(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp, nil
}

// Get 获取单个订单（校验归属）
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.getOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) getOwned(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:         o.OrderID,
		PharmacyID: o.PharmacyID,
		Total:      o.Total,
		Status:     o.Status,
		Items:      make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
	if o.Pharmacy != nil {
		resp.PharmacyName = o.Pharmacy.Name
	}
	for i := range o.Items {
		item := dto.OrderItemResponse{
			ID:           o.Items[i].OrderItemID,
			MedicationID: o.Items[i].MedicationID,
			Quantity:     o.Items[i].Quantity,
			Price:        o.Items[i].Price,
		}
		if o.Items[i].Medication != nil {
			item.MedicationName = o.Items[i].Medication.Name
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
