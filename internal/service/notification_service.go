package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/repository"
)

// NotificationService 通知消息业务逻辑
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService 创建通知 Service
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List 列出用户最近的通知（按时间倒序）
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]dto.NotificationResponse, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, dto.NotificationResponse{
			ID:        notifications[i].NotificationID,
			Title:     notifications[i].Title,
			Content:   notifications[i].Content,
			IsRead:    notifications[i].IsRead,
			CreatedAt: notifications[i].CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// MarkRead 标记通知为已读（校验归属）
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	return s.notifications.MarkRead(ctx, notificationID)
}
