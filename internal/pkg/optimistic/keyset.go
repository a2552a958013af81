package optimistic

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-json"
)

// KeySet 匿名回退存储：在没有登录态时替代远端行记录的持久键集合
type KeySet interface {
	Has(id string) bool
	Add(id string) error
	Remove(id string) error
	All() []string
}

// FileSet 文件持久化的 KeySet 实现，固定路径下存一个 JSON 数组
type FileSet struct {
	mu   sync.Mutex
	path string
	ids  []string
}

// OpenFileSet 打开（或创建）一个文件键集合
func OpenFileSet(path string) (*FileSet, error) {
	s := &FileSet{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.ids); err != nil {
		// 损坏的文件按空集处理，下一次写入覆盖
		s.ids = nil
	}
	return s, nil
}

func (s *FileSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// Add 幂等：已存在时不重复追加
func (s *FileSet) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.ids, id) {
		return nil
	}
	s.ids = append(s.ids, id)
	return s.persist()
}

func (s *FileSet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.Index(s.ids, id)
	if idx < 0 {
		return nil
	}
	s.ids = slices.Delete(s.ids, idx, idx+1)
	return s.persist()
}

func (s *FileSet) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

func (s *FileSet) persist() error {
	data, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// MemorySet 纯内存 KeySet，用于单测与无持久化要求的场景
type MemorySet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemorySet() *MemorySet {
	return &MemorySet{ids: make(map[string]struct{})}
}

func (s *MemorySet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *MemorySet) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return nil
}

func (s *MemorySet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	return nil
}

func (s *MemorySet) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
