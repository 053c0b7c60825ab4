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

// PaymentService 支付业务逻辑。
// 模拟支付网关：直接成功并生成交易号，卡信息只做必填校验、不落库。
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewPaymentService 创建支付 Service
func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, logger: logger}
}

// Process 处理支付：写入支付记录并把订单推进到 processing
func (s *PaymentService) Process(ctx context.Context, userID string, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}

	if req.PaymentMethod == model.PaymentMethodCard && len(req.CardData) == 0 {
		return nil, ErrCardDataRequired
	}

	payment := &model.Payment{
		OrderID:       order.OrderID,
		Method:        req.PaymentMethod,
		Amount:        order.Total,
		Status:        "completed",
		TransactionID: fmt.Sprintf("TXN%d", time.Now().UnixNano()),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, model.OrderStatusProcessing); err != nil {
		s.logger.Error("订单状态推进失败",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}

	s.logger.Info("支付完成",
		zap.String("order_id", order.OrderID),
		zap.String("transaction_id", payment.TransactionID))

	return &dto.PaymentResponse{
		ID:            payment.PaymentID,
		OrderID:       payment.OrderID,
		Method:        payment.Method,
		Amount:        payment.Amount,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
	}, nil
}
