package optimistic

import (
	"context"
	"sync"
)

// ToggleState 单个 Key 上最近一次切换操作所处的状态
type ToggleState int8

const (
	StateIdle ToggleState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

// RemoteFunc 远端写操作，next 为本次切换后的目标状态
type RemoteFunc func(ctx context.Context, next bool) error

// SeedFunc 读取远端当前状态，为缓存中尚不认识的 Key 提供初值
type SeedFunc func(ctx context.Context) (bool, error)

// Coordinator 变更协调器：先翻转本地缓存，再异步落远端，失败回滚
// 同一 Key 上的切换串行执行，避免并发切换丢更新
type Coordinator struct {
	cache *Cache

	// isDuplicate 判定远端错误是否为唯一约束冲突
	// 冲突说明目标状态已经成立，按成功的空操作处理
	isDuplicate func(error) bool

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	states map[string]ToggleState
}

func NewCoordinator(cache *Cache, isDuplicate func(error) bool) *Coordinator {
	return &Coordinator{
		cache:       cache,
		isDuplicate: isDuplicate,
		locks:       make(map[string]*sync.Mutex),
		states:      make(map[string]ToggleState),
	}
}

// Toggle 执行一次切换：返回切换后缓存中的状态
// 远端失败时缓存精确恢复到切换前的值，错误原样上抛
func (s *Coordinator) Toggle(ctx context.Context, key string, remote RemoteFunc) (bool, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	return s.toggleLocked(ctx, key, remote)
}

// ToggleWithSeed 与 Toggle 相同，但在持有 Key 锁的情况下先保证缓存有初值。
// 种子读取只在缓存不认识该 Key 时发生：两次快速切换中，第二次看到的是
// 第一次已提交的缓存值，而不是一次可能过期的远端读
func (s *Coordinator) ToggleWithSeed(ctx context.Context, key string, seed SeedFunc, remote RemoteFunc) (bool, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if _, known := s.cache.FlagKnown(key); !known {
		current, err := seed(ctx)
		if err != nil {
			return false, err
		}
		s.cache.SetFlag(key, current)
	}
	return s.toggleLocked(ctx, key, remote)
}

func (s *Coordinator) toggleLocked(ctx context.Context, key string, remote RemoteFunc) (bool, error) {
	previous := s.cache.Flag(key)
	next := !previous

	s.setState(key, StatePending)
	s.cache.SetFlag(key, next)

	if err := remote(ctx, next); err != nil {
		if next && s.isDuplicate != nil && s.isDuplicate(err) {
			// 重复插入：目标状态已在远端成立，不回滚
			s.setState(key, StateCommitted)
			return next, nil
		}
		s.cache.SetFlag(key, previous)
		s.setState(key, StateRolledBack)
		return previous, err
	}

	s.setState(key, StateCommitted)
	return next, nil
}

// State 查询某个 Key 上最近一次切换的状态
func (s *Coordinator) State(key string) ToggleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[key]
}

func (s *Coordinator) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[key] = l
	return l
}

func (s *Coordinator) setState(key string, state ToggleState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = state
}
