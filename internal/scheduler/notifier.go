package scheduler

import (
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pilltrack/backend/internal/model"
	pkgerrors "pilltrack/backend/pkg/errors"
)

// Handle 通知后端返回的不透明句柄，取消时原样传回
type Handle string

// Notifier 通知后端协作者接口。
// 实现方负责把触发器注册为实际的重复通知；权限未授予时
// Schedule 返回 pkgerrors.ErrPermissionDenied，由调度器降级为空操作。
type Notifier interface {
	Schedule(trigger Trigger, reminder *model.Reminder) (Handle, error)
	Cancel(handle Handle) error
	CancelAll() error
}

// FireFunc 触发器到点触发时的回调。
// reminder 为注册时的规则快照，firedAt 为触发时刻。
type FireFunc func(reminder model.Reminder, firedAt time.Time)

// CronNotifier 基于进程内 cron 的通知后端实现。
// 每个触发器注册为一个 cron 条目（"分 时 * * 周"），条目 ID 即句柄；
// 到点后执行 FireFunc（落库 pending 服药记录 + 通知消息）。
type CronNotifier struct {
	cron    *cron.Cron
	onFire  FireFunc
	logger  *zap.Logger
	granted bool

	mu      sync.Mutex
	entries map[Handle]cron.EntryID
}

// NewCronNotifier 创建 CronNotifier。
// granted=false 模拟通知权限未授予的环境：所有 Schedule 调用返回
// ErrPermissionDenied，不注册任何 cron 条目。
func NewCronNotifier(c *cron.Cron, onFire FireFunc, granted bool, logger *zap.Logger) *CronNotifier {
	return &CronNotifier{
		cron:    c,
		onFire:  onFire,
		logger:  logger,
		granted: granted,
		entries: make(map[Handle]cron.EntryID),
	}
}

// Schedule 注册一个重复触发器，返回句柄
func (n *CronNotifier) Schedule(trigger Trigger, reminder *model.Reminder) (Handle, error) {
	if !n.granted {
		return "", pkgerrors.ErrPermissionDenied
	}

	// 快照规则，触发时不回查数据库（提醒可能已被改名/换药）
	snapshot := *reminder

	entryID, err := n.cron.AddFunc(trigger.CronSpec(), func() {
		n.onFire(snapshot, time.Now())
	})
	if err != nil {
		return "", err
	}

	handle := Handle(strconv.Itoa(int(entryID)))

	n.mu.Lock()
	n.entries[handle] = entryID
	n.mu.Unlock()

	n.logger.Debug("触发器已注册",
		zap.String("reminder_id", reminder.ReminderID),
		zap.String("cron", trigger.CronSpec()),
		zap.String("handle", string(handle)),
	)

	return handle, nil
}

// Cancel 注销句柄对应的 cron 条目；未知句柄视为已取消，不报错
func (n *CronNotifier) Cancel(handle Handle) error {
	n.mu.Lock()
	entryID, ok := n.entries[handle]
	if ok {
		delete(n.entries, handle)
	}
	n.mu.Unlock()

	if ok {
		n.cron.Remove(entryID)
	}
	return nil
}

// CancelAll 注销本通知器持有的全部 cron 条目
func (n *CronNotifier) CancelAll() error {
	n.mu.Lock()
	entries := n.entries
	n.entries = make(map[Handle]cron.EntryID)
	n.mu.Unlock()

	for _, entryID := range entries {
		n.cron.Remove(entryID)
	}
	return nil
}
