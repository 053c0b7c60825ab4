package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Medication   MedicationRepository
	Reminder     ReminderRepository
	Intake       IntakeRepository
	Pharmacy     PharmacyRepository
	Order        OrderRepository
	Payment      PaymentRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Medication:   NewMedicationRepo(db),
		Reminder:     NewReminderRepo(db),
		Intake:       NewIntakeRepo(db),
		Pharmacy:     NewPharmacyRepo(db),
		Order:        NewOrderRepo(db),
		Payment:      NewPaymentRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
