package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"go.uber.org/zap"

	"pilltrack/backend/internal/model"
	pkgerrors "pilltrack/backend/pkg/errors"
)

// ── 测试辅助：假通知后端 ──

type fakeNotifier struct {
	nextID     int
	live       map[Handle]Trigger // 当前存活的触发器
	denied     bool               // 模拟通知权限未授予
	failEvery  int                // >0 时每第 N 次 Schedule 返回错误
	scheduleN  int
	cancelLog  []string // 操作顺序记录："cancel_all" / "schedule"
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{live: make(map[Handle]Trigger)}
}

func (f *fakeNotifier) Schedule(trigger Trigger, _ *model.Reminder) (Handle, error) {
	if f.denied {
		return "", pkgerrors.ErrPermissionDenied
	}
	f.scheduleN++
	if f.failEvery > 0 && f.scheduleN%f.failEvery == 0 {
		return "", errors.New("通知后端注册失败")
	}
	f.nextID++
	handle := Handle(fmt.Sprintf("n-%d", f.nextID))
	f.live[handle] = trigger
	f.cancelLog = append(f.cancelLog, "schedule")
	return handle, nil
}

func (f *fakeNotifier) Cancel(handle Handle) error {
	delete(f.live, handle)
	return nil
}

func (f *fakeNotifier) CancelAll() error {
	f.live = make(map[Handle]Trigger)
	f.cancelLog = append(f.cancelLog, "cancel_all")
	return nil
}

// liveSpecs 返回当前存活触发器的 cron 表达式集合（排序后），用于比对
func (f *fakeNotifier) liveSpecs() []string {
	specs := make([]string, 0, len(f.live))
	for _, trigger := range f.live {
		specs = append(specs, trigger.CronSpec())
	}
	sort.Strings(specs)
	return specs
}

func setupTestScheduler() (Scheduler, *fakeNotifier, BindingStore) {
	notifier := newFakeNotifier()
	bindings := NewMemoryBindingStore()
	s := New(notifier, bindings, zap.NewNop())
	return s, notifier, bindings
}

func dailyReminder(id, clock string) *model.Reminder {
	return &model.Reminder{
		ReminderID: id,
		UserID:     "user-001",
		Time:       clock,
		Frequency:  model.FrequencyDaily,
		Enabled:    true,
	}
}

// ── 单条调度 ──

func TestScheduler_ScheduleReminder_Daily(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	if err := s.ScheduleReminder(dailyReminder("rem-1", "08:00")); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}

	if len(notifier.live) != 1 {
		t.Errorf("期望1个存活触发器，实际=%d", len(notifier.live))
	}
	if len(bindings.Get("rem-1")) != 1 {
		t.Errorf("期望绑定1个句柄，实际=%d", len(bindings.Get("rem-1")))
	}
}

func TestScheduler_ScheduleReminder_TwiceDaily(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	r := &model.Reminder{ReminderID: "rem-1", Time: "20:00", Frequency: model.FrequencyTwiceDaily, Enabled: true}
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}

	specs := notifier.liveSpecs()
	want := []string{"0 20 * * *", "0 8 * * *"}
	if len(specs) != 2 || specs[0] != want[0] || specs[1] != want[1] {
		t.Errorf("期望触发器 %v，实际 %v", want, specs)
	}
	if len(bindings.Get("rem-1")) != 2 {
		t.Errorf("期望绑定2个句柄，实际=%d", len(bindings.Get("rem-1")))
	}
}

func TestScheduler_ScheduleReminder_Disabled(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	r := dailyReminder("rem-1", "08:00")
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}

	// 关闭提醒：Scheduled → Unscheduled，句柄全部清除
	r.Enabled = false
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("关闭提醒应成功: %v", err)
	}

	if len(notifier.live) != 0 {
		t.Errorf("关闭后不应有存活触发器，实际=%d", len(notifier.live))
	}
	if handles := bindings.Get("rem-1"); len(handles) != 0 {
		t.Errorf("关闭后绑定应为空，实际=%v", handles)
	}
}

func TestScheduler_ScheduleReminder_Reschedule(t *testing.T) {
	s, notifier, _ := setupTestScheduler()

	r := dailyReminder("rem-1", "08:00")
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}

	// 修改时间：取消后重建，不留旧触发器残片
	r.Time = "09:30"
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("重调度应成功: %v", err)
	}

	specs := notifier.liveSpecs()
	if len(specs) != 1 || specs[0] != "30 9 * * *" {
		t.Errorf("期望仅存活 \"30 9 * * *\"，实际 %v", specs)
	}
}

func TestScheduler_ScheduleReminder_ValidationBeforeSideEffect(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	r := dailyReminder("rem-1", "08:00")
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}

	// 非法编辑：校验失败必须先于任何取消/注册动作，旧触发器原样保留
	bad := dailyReminder("rem-1", "25:00")
	if err := s.ScheduleReminder(bad); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("期望 ErrInvalidTime，实际: %v", err)
	}

	if len(notifier.live) != 1 {
		t.Errorf("校验失败后旧触发器应保留，实际存活=%d", len(notifier.live))
	}
	if len(bindings.Get("rem-1")) != 1 {
		t.Errorf("校验失败后绑定应保留，实际=%d", len(bindings.Get("rem-1")))
	}
}

func TestScheduler_ScheduleReminder_PermissionDenied(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()
	notifier.denied = true

	// 权限未授予：空操作，不报错，零存活触发器
	if err := s.ScheduleReminder(dailyReminder("rem-1", "08:00")); err != nil {
		t.Fatalf("权限未授予时应降级为空操作: %v", err)
	}
	if len(notifier.live) != 0 {
		t.Errorf("权限未授予时不应有存活触发器，实际=%d", len(notifier.live))
	}
	if handles := bindings.Get("rem-1"); len(handles) != 0 {
		t.Errorf("权限未授予时不应记录绑定，实际=%v", handles)
	}
}

// ── 取消 ──

func TestScheduler_CancelReminder(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	r := &model.Reminder{
		ReminderID: "rem-1", Time: "09:30", Frequency: model.FrequencyWeekly,
		Enabled: true, DaysOfWeek: model.IntArray{1, 3, 5},
	}
	if err := s.ScheduleReminder(r); err != nil {
		t.Fatalf("ScheduleReminder 应成功: %v", err)
	}
	if len(notifier.live) != 3 {
		t.Fatalf("期望3个存活触发器，实际=%d", len(notifier.live))
	}

	// 删除提醒：零存活触发器，绑定条目移除
	if err := s.CancelReminder("rem-1"); err != nil {
		t.Fatalf("CancelReminder 应成功: %v", err)
	}
	if len(notifier.live) != 0 {
		t.Errorf("取消后不应有存活触发器，实际=%d", len(notifier.live))
	}
	if handles := bindings.Get("rem-1"); len(handles) != 0 {
		t.Errorf("取消后绑定应为空，实际=%v", handles)
	}
}

// ── 全量重建 ──

func TestScheduler_ScheduleAll_RoundTrip(t *testing.T) {
	s, notifier, _ := setupTestScheduler()

	reminders := []model.Reminder{
		*dailyReminder("rem-1", "08:00"),
		{ReminderID: "rem-2", Time: "20:00", Frequency: model.FrequencyTwiceDaily, Enabled: true},
		{ReminderID: "rem-3", Time: "09:30", Frequency: model.FrequencyWeekly, Enabled: true, DaysOfWeek: model.IntArray{1, 3}},
		{ReminderID: "rem-4", Time: "10:00", Frequency: model.FrequencyDaily, Enabled: false}, // 关闭的不调度
	}

	s.ScheduleAll(reminders)
	before := notifier.liveSpecs()
	if len(before) != 5 { // 1 + 2 + 2
		t.Fatalf("期望5个存活触发器，实际=%d", len(before))
	}

	// 全局开关 关→开 的往返：重建后存活触发器集合应与关闭前完全一致
	s.ScheduleAll(nil) // 全局关闭
	if len(notifier.live) != 0 {
		t.Fatalf("全局关闭后不应有存活触发器，实际=%d", len(notifier.live))
	}
	s.ScheduleAll(reminders) // 全局开启
	after := notifier.liveSpecs()

	if len(before) != len(after) {
		t.Fatalf("往返后触发器数量不一致：%d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("往返后触发器集合不一致：%v vs %v", before, after)
			break
		}
	}
}

func TestScheduler_ScheduleAll_CancelBeforeCreate(t *testing.T) {
	s, notifier, _ := setupTestScheduler()

	s.ScheduleAll([]model.Reminder{*dailyReminder("rem-1", "08:00")})
	notifier.cancelLog = nil
	s.ScheduleAll([]model.Reminder{*dailyReminder("rem-1", "08:00")})

	// 全量取消必须严格先于任何新注册
	if len(notifier.cancelLog) == 0 || notifier.cancelLog[0] != "cancel_all" {
		t.Errorf("期望首个操作为 cancel_all，实际顺序=%v", notifier.cancelLog)
	}
}

func TestScheduler_ScheduleAll_SkipsFailedReminder(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()

	reminders := []model.Reminder{
		*dailyReminder("rem-1", "08:00"),
		*dailyReminder("rem-2", "bad-time"), // 单条失败
		*dailyReminder("rem-3", "10:00"),
	}

	s.ScheduleAll(reminders)

	// 失败的一条被跳过，其余照常调度
	if len(bindings.Get("rem-1")) != 1 || len(bindings.Get("rem-3")) != 1 {
		t.Error("正常提醒应照常调度")
	}
	if len(bindings.Get("rem-2")) != 0 {
		t.Error("失败提醒不应留下绑定")
	}
	if len(notifier.live) != 2 {
		t.Errorf("期望2个存活触发器，实际=%d", len(notifier.live))
	}
}

func TestScheduler_PartialScheduleRollback(t *testing.T) {
	s, notifier, bindings := setupTestScheduler()
	notifier.failEvery = 2 // 第2次注册失败

	r := &model.Reminder{ReminderID: "rem-1", Time: "08:00", Frequency: model.FrequencyTwiceDaily, Enabled: true}
	if err := s.ScheduleReminder(r); err == nil {
		t.Fatal("期望注册失败返回错误")
	}

	// 失败后不得留下半套触发器
	if len(notifier.live) != 0 {
		t.Errorf("失败后不应有存活触发器，实际=%d", len(notifier.live))
	}
	if handles := bindings.Get("rem-1"); len(handles) != 0 {
		t.Errorf("失败后绑定应为空，实际=%v", handles)
	}
}
