package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// TTL 进程内固定过期时间缓存
// 作为显式依赖注入给各 handler 使用，进程重启后不保留
type TTL struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	items map[string]entry
}

func NewTTL(ttl time.Duration) *TTL {
	return &TTL{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]entry),
	}
}

// Get 命中且未过期时返回值，过期条目惰性删除
func (s *TTL) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *TTL) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Purge 清理所有已过期的条目，由定时任务调用
func (s *TTL) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	now := s.now()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
			removed++
		}
	}
	return removed
}
