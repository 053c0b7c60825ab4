package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pilltrack/backend/internal/model"
)

// ── Mock ReminderRepository ──

type mockReminderRepo struct {
	reminders map[string]*model.Reminder
	seq       int
}

func newMockReminderRepo() *mockReminderRepo {
	return &mockReminderRepo{reminders: make(map[string]*model.Reminder)}
}

func (m *mockReminderRepo) Create(_ context.Context, reminder *model.Reminder) error {
	if reminder.ReminderID == "" {
		m.seq++
		reminder.ReminderID = fmt.Sprintf("rem-%d", m.seq)
	}
	reminder.CreatedAt = time.Now()
	m.reminders[reminder.ReminderID] = reminder
	return nil
}

func (m *mockReminderRepo) GetByID(_ context.Context, id string) (*model.Reminder, error) {
	if r, ok := m.reminders[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReminderRepo) ListByUser(_ context.Context, userID string) ([]model.Reminder, error) {
	var result []model.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReminderRepo) ListAllEnabled(_ context.Context) ([]model.Reminder, error) {
	var result []model.Reminder
	for _, r := range m.reminders {
		if r.Enabled {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReminderRepo) Update(_ context.Context, reminder *model.Reminder) error {
	if _, ok := m.reminders[reminder.ReminderID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reminders[reminder.ReminderID] = reminder
	return nil
}

func (m *mockReminderRepo) Delete(_ context.Context, id string) error {
	delete(m.reminders, id)
	return nil
}

func (m *mockReminderRepo) SetEnabledByUser(_ context.Context, userID string, enabled bool) error {
	for _, r := range m.reminders {
		if r.UserID == userID {
			r.Enabled = enabled
		}
	}
	return nil
}

func (m *mockReminderRepo) AnyEnabled(_ context.Context, userID string) (bool, error) {
	for _, r := range m.reminders {
		if r.UserID == userID && r.Enabled {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock MedicationRepository ──

type mockMedicationRepo struct {
	medications map[string]*model.Medication
	seq         int
}

func newMockMedicationRepo() *mockMedicationRepo {
	return &mockMedicationRepo{medications: make(map[string]*model.Medication)}
}

func (m *mockMedicationRepo) Create(_ context.Context, med *model.Medication) error {
	if med.MedicationID == "" {
		m.seq++
		med.MedicationID = fmt.Sprintf("med-%d", m.seq)
	}
	med.CreatedAt = time.Now()
	m.medications[med.MedicationID] = med
	return nil
}

func (m *mockMedicationRepo) GetByID(_ context.Context, id string) (*model.Medication, error) {
	if med, ok := m.medications[id]; ok {
		clone := *med
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMedicationRepo) GetByBarcode(_ context.Context, userID, barcode string) (*model.Medication, error) {
	for _, med := range m.medications {
		if med.UserID == userID && med.Barcode == barcode {
			clone := *med
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMedicationRepo) ListByUser(_ context.Context, userID string) ([]model.Medication, error) {
	var result []model.Medication
	for _, med := range m.medications {
		if med.UserID == userID {
			result = append(result, *med)
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) ListLowStock(_ context.Context, userID string, threshold int) ([]model.Medication, error) {
	var result []model.Medication
	for _, med := range m.medications {
		if med.UserID == userID && med.Stock > 0 && med.Stock <= threshold {
			result = append(result, *med)
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) Update(_ context.Context, med *model.Medication) error {
	if _, ok := m.medications[med.MedicationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.medications[med.MedicationID] = med
	return nil
}

func (m *mockMedicationRepo) Delete(_ context.Context, id string) error {
	delete(m.medications, id)
	return nil
}

// ── Mock IntakeRepository ──

type mockIntakeRepo struct {
	intakes map[string]*model.MedicationIntake
	seq     int
}

func newMockIntakeRepo() *mockIntakeRepo {
	return &mockIntakeRepo{intakes: make(map[string]*model.MedicationIntake)}
}

func (m *mockIntakeRepo) Create(_ context.Context, intake *model.MedicationIntake) error {
	if intake.IntakeID == "" {
		m.seq++
		intake.IntakeID = fmt.Sprintf("intake-%d", m.seq)
	}
	m.intakes[intake.IntakeID] = intake
	return nil
}

func (m *mockIntakeRepo) GetByID(_ context.Context, id string) (*model.MedicationIntake, error) {
	if in, ok := m.intakes[id]; ok {
		clone := *in
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIntakeRepo) ListByUserSince(_ context.Context, userID string, since time.Time) ([]model.MedicationIntake, error) {
	var result []model.MedicationIntake
	for _, in := range m.intakes {
		if in.UserID == userID && !in.ScheduledAt.Before(since) {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (m *mockIntakeRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error) {
	var result []model.MedicationIntake
	for _, in := range m.intakes {
		if in.UserID == userID && !in.ScheduledAt.Before(from) && in.ScheduledAt.Before(to) {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (m *mockIntakeRepo) ListUpcomingPending(_ context.Context, userID string, from, to time.Time) ([]model.MedicationIntake, error) {
	var result []model.MedicationIntake
	for _, in := range m.intakes {
		if in.UserID == userID && in.Status == model.IntakeStatusPending &&
			!in.ScheduledAt.Before(from) && !in.ScheduledAt.After(to) {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (m *mockIntakeRepo) Update(_ context.Context, intake *model.MedicationIntake) error {
	if _, ok := m.intakes[intake.IntakeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.intakes[intake.IntakeID] = intake
	return nil
}

func (m *mockIntakeRepo) MarkMissedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var affected int64
	for _, in := range m.intakes {
		if in.Status == model.IntakeStatusPending && in.ScheduledAt.Before(cutoff) {
			in.Status = model.IntakeStatusMissed
			affected++
		}
	}
	return affected, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if notification.NotificationID == "" {
		m.seq++
		notification.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	notification.CreatedAt = time.Now()
	m.notifications[notification.NotificationID] = notification
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		clone := *n
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Fake Scheduler ──
// 记录调用序列，便于断言 Service 层驱动调度器的时机

type fakeScheduler struct {
	scheduled   []string // ScheduleReminder 收到的 reminder_id
	cancelled   []string // CancelReminder 收到的 reminder_id
	allBatches  [][]string
	scheduleErr error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (f *fakeScheduler) ScheduleReminder(reminder *model.Reminder) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = append(f.scheduled, reminder.ReminderID)
	return nil
}

func (f *fakeScheduler) CancelReminder(reminderID string) error {
	f.cancelled = append(f.cancelled, reminderID)
	return nil
}

func (f *fakeScheduler) ScheduleAll(reminders []model.Reminder) {
	batch := make([]string, 0, len(reminders))
	for i := range reminders {
		batch = append(batch, reminders[i].ReminderID)
	}
	f.allBatches = append(f.allBatches, batch)
}
