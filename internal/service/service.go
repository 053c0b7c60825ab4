package service

import (
	"time"

	"go.uber.org/zap"

	"pilltrack/backend/config"
	"pilltrack/backend/internal/repository"
	"pilltrack/backend/internal/scheduler"
	"pilltrack/backend/pkg/jwt"
	"pilltrack/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         *AuthService
	Medication   *MedicationService
	Reminder     *ReminderService
	Intake       *IntakeService
	Analytics    *AnalyticsService
	Dashboard    *DashboardService
	Pharmacy     *PharmacyService
	Order        *OrderService
	Payment      *PaymentService
	Notification *NotificationService
	Export       *ExportService
}

// New 创建 Service 聚合
func New(
	cfg *config.Config,
	repo *repository.Repository,
	sched scheduler.Scheduler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		// Load 阶段已校验过时区，这里不应失败；兜底 UTC
		loc = time.UTC
	}

	return &Service{
		Auth:         NewAuthService(repo.User, jwtManager, redisClient, logger),
		Medication:   NewMedicationService(repo.Medication, logger),
		Reminder:     NewReminderService(repo.Reminder, repo.Medication, sched, logger),
		Intake:       NewIntakeService(repo.Intake, repo.Notification, cfg.Reminder.MissedAfter, loc, logger),
		Analytics:    NewAnalyticsService(repo.Intake, repo.Medication, loc),
		Dashboard:    NewDashboardService(repo.Intake, repo.Medication, loc),
		Pharmacy:     NewPharmacyService(repo.Pharmacy),
		Order:        NewOrderService(repo.Order, repo.Medication, repo.Pharmacy, logger),
		Payment:      NewPaymentService(repo.Payment, repo.Order, logger),
		Notification: NewNotificationService(repo.Notification),
		Export:       NewExportService(repo.Intake, repo.Medication, repo.Reminder, loc),
	}
}
