package optimistic

import (
	"sync"
)

// Cache 本地乐观缓存：以实体 Key 为粒度的布尔状态与计数值
// 读路径同步返回，写路径由 Coordinator 驱动
type Cache struct {
	mu     sync.RWMutex
	flags  map[string]bool
	counts map[string]int64
}

func NewCache() *Cache {
	return &Cache{
		flags:  make(map[string]bool),
		counts: make(map[string]int64),
	}
}

// Flag 读取布尔状态，未知 Key 返回 false
func (s *Cache) Flag(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key]
}

// FlagKnown 读取布尔状态并报告该 Key 是否已有记录
func (s *Cache) FlagKnown(key string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.flags[key]
	return value, ok
}

// SetFlag 写入布尔状态
func (s *Cache) SetFlag(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
}

// Count 读取计数值，未知 Key 返回 0
func (s *Cache) Count(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key]
}

// SetCount 写入计数绝对值
func (s *Cache) SetCount(key string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key] = value
}

// AddCount 按增量调整计数并返回新值
func (s *Cache) AddCount(key string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key] += delta
	return s.counts[key]
}

// Forget 丢弃某个 Key 的本地状态
func (s *Cache) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, key)
	delete(s.counts, key)
}
