package optimistic

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liked.json")

	s, err := OpenFileSet(path)
	require.NoError(t, err)

	assert.False(t, s.Has("42"))
	require.NoError(t, s.Add("42"))
	assert.True(t, s.Has("42"))

	// 重新打开后仍然存在（页面刷新语义）
	reopened, err := OpenFileSet(path)
	require.NoError(t, err)
	assert.True(t, reopened.Has("42"))
}

func TestFileSetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liked.json")
	s, err := OpenFileSet(path)
	require.NoError(t, err)

	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Remove("7"))
	assert.False(t, s.Has("7"))

	// 删除不存在的键是空操作
	require.NoError(t, s.Remove("7"))
}

func TestFileSetAddIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liked.json")
	s, err := OpenFileSet(path)
	require.NoError(t, err)

	require.NoError(t, s.Add("42"))
	require.NoError(t, s.Add("42"))
	assert.Len(t, s.All(), 1)
}

func TestMemorySet(t *testing.T) {
	s := NewMemorySet()
	require.NoError(t, s.Add("a"))
	require.NoError(t, s.Add("a"))
	assert.True(t, s.Has("a"))
	assert.Len(t, s.All(), 1)
	require.NoError(t, s.Remove("a"))
	assert.False(t, s.Has("a"))
}
