package optimistic

import (
	"sync"
	"time"
)

// Event 远端数据源推送的一条行变更事件
type Event struct {
	ID        string    // 服务端行 ID
	ClientKey string    // 客户端生成的幂等键，可为空
	SenderID  uint64
	Content   string
	Seq       uint64
	CreatedAt time.Time
}

// maxRetained 有序视图与去重键的保留上限。
// 超限后从最旧一端淘汰，重复消息在正常投递下都落在这个窗口内
const maxRetained = 256

// Listener 变更订阅监听器：把远端推送的事件合并进本地有序视图
// 本地乐观写入先通过 Stage 登记幂等键，回推的同一事件按键精确去重
// 视图和去重键按 maxRetained 滚动保留，长连接下内存占用有界
type Listener struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	staged  map[string]struct{}
	items   []Event
}

func NewListener() *Listener {
	return &Listener{
		seen:   make(map[string]struct{}),
		staged: make(map[string]struct{}),
	}
}

// Stage 登记一条本地乐观占位的幂等键
func (s *Listener) Stage(clientKey string) {
	if clientKey == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.staged) >= maxRetained {
		for k := range s.staged {
			delete(s.staged, k)
			break
		}
	}
	s.staged[clientKey] = struct{}{}
}

// Merge 合并一条远端事件，返回是否实际追加
// 已见过的行 ID、或本地乐观写入已占位的幂等键，都按重复丢弃
func (s *Listener) Merge(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID != "" {
		if _, ok := s.seen[ev.ID]; ok {
			return false
		}
		s.seen[ev.ID] = struct{}{}
	}

	if ev.ClientKey != "" {
		if _, ok := s.staged[ev.ClientKey]; ok {
			delete(s.staged, ev.ClientKey)
			return false
		}
	}

	s.insert(ev)
	s.evict()
	return true
}

// evict 淘汰最旧的条目，连带回收其去重键
func (s *Listener) evict() {
	for len(s.items) > maxRetained {
		oldest := s.items[0]
		s.items = s.items[1:]
		if oldest.ID != "" {
			delete(s.seen, oldest.ID)
		}
	}
}

// Events 返回当前有序视图的快照
func (s *Listener) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.items))
	copy(out, s.items)
	return out
}

// insert 保持 (CreatedAt, Seq) 升序，从尾部回找插入位
// 正常到达顺序下是 O(1) 追加
func (s *Listener) insert(ev Event) {
	pos := len(s.items)
	for pos > 0 {
		prev := s.items[pos-1]
		if prev.CreatedAt.Before(ev.CreatedAt) ||
			(prev.CreatedAt.Equal(ev.CreatedAt) && prev.Seq <= ev.Seq) {
			break
		}
		pos--
	}
	s.items = append(s.items, Event{})
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = ev
}
