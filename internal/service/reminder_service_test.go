package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"pilltrack/backend/internal/dto"
	"pilltrack/backend/internal/model"
)

func newTestReminderService() (*ReminderService, *mockReminderRepo, *mockMedicationRepo, *fakeScheduler) {
	reminders := newMockReminderRepo()
	medications := newMockMedicationRepo()
	sched := newFakeScheduler()
	svc := NewReminderService(reminders, medications, sched, zap.NewNop())
	return svc, reminders, medications, sched
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestReminderService_Create(t *testing.T) {
	svc, reminders, _, sched := newTestReminderService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
	})
	if err != nil {
		t.Fatalf("创建提醒失败: %v", err)
	}

	if !resp.Enabled {
		t.Error("未指定 enabled 时应默认为 true")
	}
	if resp.MedicationName != "General Reminder" {
		t.Errorf("通用提醒名称期望 General Reminder，实际=%s", resp.MedicationName)
	}
	if _, ok := reminders.reminders[resp.ID]; !ok {
		t.Error("提醒未落库")
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != resp.ID {
		t.Errorf("调度器应收到新提醒，实际=%v", sched.scheduled)
	}
}

func TestReminderService_Create_WeeklyWithoutDays(t *testing.T) {
	svc, reminders, _, sched := newTestReminderService()

	_, err := svc.Create(context.Background(), "user-1", &dto.CreateReminderRequest{
		Time:      "09:00",
		Frequency: model.FrequencyWeekly,
	})
	if !errors.Is(err, ErrWeeklyNeedsDays) {
		t.Fatalf("期望 ErrWeeklyNeedsDays，实际=%v", err)
	}
	if len(reminders.reminders) != 0 {
		t.Error("校验失败时不应落库")
	}
	if len(sched.scheduled) != 0 {
		t.Error("校验失败时不应触碰调度器")
	}
}

func TestReminderService_Create_InvalidTime(t *testing.T) {
	svc, reminders, _, _ := newTestReminderService()

	_, err := svc.Create(context.Background(), "user-1", &dto.CreateReminderRequest{
		Time:      "25:00",
		Frequency: model.FrequencyDaily,
	})
	if err == nil {
		t.Fatal("无效时间应返回错误")
	}
	if len(reminders.reminders) != 0 {
		t.Error("校验失败时不应落库")
	}
}

func TestReminderService_Create_ForeignMedication(t *testing.T) {
	svc, _, medications, _ := newTestReminderService()
	ctx := context.Background()

	med := &model.Medication{UserID: "user-2", Name: "阿司匹林"}
	medications.Create(ctx, med)

	_, err := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		MedicationID: &med.MedicationID,
		Time:         "08:00",
		Frequency:    model.FrequencyDaily,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("引用他人药品期望 ErrForbidden，实际=%v", err)
	}
}

func TestReminderService_Update_Reschedules(t *testing.T) {
	svc, _, _, sched := newTestReminderService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
	})
	if err != nil {
		t.Fatalf("创建提醒失败: %v", err)
	}

	updated, err := svc.Update(ctx, "user-1", created.ID, &dto.UpdateReminderRequest{
		Frequency:  strPtr(model.FrequencyWeekly),
		DaysOfWeek: &[]int{1, 3},
	})
	if err != nil {
		t.Fatalf("更新提醒失败: %v", err)
	}
	if updated.Frequency != model.FrequencyWeekly {
		t.Errorf("频率期望 weekly，实际=%s", updated.Frequency)
	}
	// 创建 + 更新各驱动一次调度
	if len(sched.scheduled) != 2 {
		t.Errorf("调度器应被调用两次，实际=%d", len(sched.scheduled))
	}
}

func TestReminderService_Update_InvalidKeepsStored(t *testing.T) {
	svc, reminders, _, _ := newTestReminderService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
	})

	_, err := svc.Update(ctx, "user-1", created.ID, &dto.UpdateReminderRequest{
		Frequency: strPtr(model.FrequencyWeekly), // 未提供 daysOfWeek
	})
	if !errors.Is(err, ErrWeeklyNeedsDays) {
		t.Fatalf("期望 ErrWeeklyNeedsDays，实际=%v", err)
	}

	stored := reminders.reminders[created.ID]
	if stored.Frequency != model.FrequencyDaily {
		t.Errorf("校验失败后库内频率应保持 daily，实际=%s", stored.Frequency)
	}
}

func TestReminderService_Delete_CancelsBeforeRemoval(t *testing.T) {
	svc, reminders, _, sched := newTestReminderService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
	})

	if err := svc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("删除提醒失败: %v", err)
	}
	if len(sched.cancelled) != 1 || sched.cancelled[0] != created.ID {
		t.Errorf("删除应先撤销触发器，实际=%v", sched.cancelled)
	}
	if _, ok := reminders.reminders[created.ID]; ok {
		t.Error("提醒未从库中删除")
	}
}

func TestReminderService_Delete_Foreign(t *testing.T) {
	svc, _, _, sched := newTestReminderService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
	})

	err := svc.Delete(ctx, "user-2", created.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("删除他人提醒期望 ErrForbidden，实际=%v", err)
	}
	if len(sched.cancelled) != 0 {
		t.Error("越权删除不应触碰调度器")
	}
}

func TestReminderService_GlobalSwitch(t *testing.T) {
	svc, _, _, sched := newTestReminderService()
	ctx := context.Background()

	for _, tm := range []string{"08:00", "12:00", "20:00"} {
		if _, err := svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
			Time:      tm,
			Frequency: model.FrequencyDaily,
		}); err != nil {
			t.Fatalf("创建提醒失败: %v", err)
		}
	}

	// 关闭全局开关
	resp, err := svc.UpdateSettings(ctx, "user-1", &dto.UpdateReminderSettingsRequest{
		GlobalEnabled: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("更新全局开关失败: %v", err)
	}
	if resp.GlobalEnabled {
		t.Error("关闭后 globalEnabled 应为 false")
	}
	for _, r := range resp.Reminders {
		if r.Enabled {
			t.Errorf("提醒 %s 应已关闭", r.ID)
		}
	}
	if len(sched.allBatches) != 1 || len(sched.allBatches[0]) != 0 {
		t.Errorf("关闭后全量重建批次应为空，实际=%v", sched.allBatches)
	}

	// 重新打开
	resp, err = svc.UpdateSettings(ctx, "user-1", &dto.UpdateReminderSettingsRequest{
		GlobalEnabled: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("更新全局开关失败: %v", err)
	}
	if !resp.GlobalEnabled {
		t.Error("打开后 globalEnabled 应为 true")
	}
	if len(sched.allBatches) != 2 || len(sched.allBatches[1]) != 3 {
		t.Errorf("打开后全量重建应包含3条提醒，实际=%v", sched.allBatches)
	}
}

func TestReminderService_List_GlobalEnabledSemantics(t *testing.T) {
	svc, _, _, _ := newTestReminderService()
	ctx := context.Background()

	// 一条启用一条关闭：只要任一启用，全局开关即视为开
	svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time: "08:00", Frequency: model.FrequencyDaily,
	})
	svc.Create(ctx, "user-1", &dto.CreateReminderRequest{
		Time: "20:00", Frequency: model.FrequencyDaily, Enabled: boolPtr(false),
	})

	resp, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("列出提醒失败: %v", err)
	}
	if !resp.GlobalEnabled {
		t.Error("存在启用提醒时 globalEnabled 应为 true")
	}
	if len(resp.Reminders) != 2 {
		t.Errorf("提醒数量期望 2，实际=%d", len(resp.Reminders))
	}
}
