package scheduler

import "sync"

// BindingStore 维护 提醒ID → 已注册通知句柄列表 的映射。
// 取消一条提醒的通知时靠它找回该提醒创建过的全部句柄。
// 句柄随进程存活（cron 条目不跨重启），因此采用进程内存储；
// 启动时由 ScheduleAll 从数据库全量重建。
type BindingStore interface {
	Put(reminderID string, handles []Handle)
	Get(reminderID string) []Handle
	Remove(reminderID string)
	Clear()
}

// bindingKey 生成命名空间化的存储键（每条提醒一个键）
func bindingKey(reminderID string) string {
	return "reminder:" + reminderID + ":notifications"
}

type memoryBindingStore struct {
	mu       sync.RWMutex
	bindings map[string][]Handle
}

// NewMemoryBindingStore 创建进程内 BindingStore
func NewMemoryBindingStore() BindingStore {
	return &memoryBindingStore{bindings: make(map[string][]Handle)}
}

func (s *memoryBindingStore) Put(reminderID string, handles []Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[bindingKey(reminderID)] = handles
}

func (s *memoryBindingStore) Get(reminderID string) []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bindings[bindingKey(reminderID)]
}

func (s *memoryBindingStore) Remove(reminderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, bindingKey(reminderID))
}

func (s *memoryBindingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = make(map[string][]Handle)
}
