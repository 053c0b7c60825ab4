package handler

import "pilltrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Dashboard    *DashboardHandler
	Analytics    *AnalyticsHandler
	Medication   *MedicationHandler
	Reminder     *ReminderHandler
	Intake       *IntakeHandler
	Notification *NotificationHandler
	Pharmacy     *PharmacyHandler
	Order        *OrderHandler
	Payment      *PaymentHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Analytics:    NewAnalyticsHandler(svc.Analytics),
		Medication:   NewMedicationHandler(svc.Medication),
		Reminder:     NewReminderHandler(svc.Reminder),
		Intake:       NewIntakeHandler(svc.Intake),
		Notification: NewNotificationHandler(svc.Notification),
		Pharmacy:     NewPharmacyHandler(svc.Pharmacy),
		Order:        NewOrderHandler(svc.Order),
		Payment:      NewPaymentHandler(svc.Payment),
		Export:       NewExportHandler(svc.Export),
	}
}
