package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemoteDown = errors.New("remote unavailable")

var errDuplicateKey = errors.New("duplicate key")

func isDup(err error) bool {
	return errors.Is(err, errDuplicateKey)
}

func okRemote(ctx context.Context, next bool) error { return nil }

func TestToggleTwiceReturnsToOriginal(t *testing.T) {
	for _, initial := range []bool{false, true} {
		cache := NewCache()
		cache.SetFlag("post:7", initial)
		coord := NewCoordinator(cache, isDup)

		first, err := coord.Toggle(context.Background(), "post:7", okRemote)
		require.NoError(t, err)
		assert.Equal(t, !initial, first)

		second, err := coord.Toggle(context.Background(), "post:7", okRemote)
		require.NoError(t, err)
		assert.Equal(t, initial, second)
		assert.Equal(t, initial, cache.Flag("post:7"))
	}
}

func TestToggleRollbackOnRemoteFailure(t *testing.T) {
	cache := NewCache()
	cache.SetFlag("post:42", true)
	coord := NewCoordinator(cache, isDup)

	got, err := coord.Toggle(context.Background(), "post:42", func(ctx context.Context, next bool) error {
		// 协调器此刻已经先行翻转了缓存
		assert.Equal(t, next, cache.Flag("post:42"))
		return errRemoteDown
	})

	assert.ErrorIs(t, err, errRemoteDown)
	assert.True(t, got)
	assert.True(t, cache.Flag("post:42"))
	assert.Equal(t, StateRolledBack, coord.State("post:42"))
}

func TestToggleDuplicateInsertIsBenign(t *testing.T) {
	cache := NewCache()
	coord := NewCoordinator(cache, isDup)

	got, err := coord.Toggle(context.Background(), "post:9", func(ctx context.Context, next bool) error {
		return errDuplicateKey
	})

	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, cache.Flag("post:9"))
	assert.Equal(t, StateCommitted, coord.State("post:9"))
}

func TestToggleDuplicateOnDeleteStillFails(t *testing.T) {
	cache := NewCache()
	cache.SetFlag("post:9", true)
	coord := NewCoordinator(cache, isDup)

	// 删除方向的唯一约束错误不享受幂等豁免
	got, err := coord.Toggle(context.Background(), "post:9", func(ctx context.Context, next bool) error {
		return errDuplicateKey
	})

	assert.Error(t, err)
	assert.True(t, got)
	assert.True(t, cache.Flag("post:9"))
}

func TestRapidTogglesSerializePerKey(t *testing.T) {
	cache := NewCache()
	coord := NewCoordinator(cache, isDup)

	slowRemote := func(ctx context.Context, next bool) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := coord.Toggle(context.Background(), "post:7", slowRemote)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 偶数次切换回到初始状态
	assert.False(t, cache.Flag("post:7"))
	assert.Equal(t, StateCommitted, coord.State("post:7"))
}

func TestToggleWithSeedReadsRemoteOnce(t *testing.T) {
	cache := NewCache()
	coord := NewCoordinator(cache, isDup)

	// 远端快照固定为未标记，只有第一次切换允许读它
	seeds := 0
	seed := func(ctx context.Context) (bool, error) {
		seeds++
		return false, nil
	}

	first, err := coord.ToggleWithSeed(context.Background(), "post:7", seed, okRemote)
	require.NoError(t, err)
	assert.True(t, first)

	// 第二次切换必须用缓存里已提交的值，而不是又一次过期读
	second, err := coord.ToggleWithSeed(context.Background(), "post:7", seed, okRemote)
	require.NoError(t, err)
	assert.False(t, second)
	assert.Equal(t, 1, seeds)
	assert.False(t, cache.Flag("post:7"))
}

func TestToggleWithSeedPropagatesSeedError(t *testing.T) {
	cache := NewCache()
	coord := NewCoordinator(cache, isDup)

	remoteCalled := false
	_, err := coord.ToggleWithSeed(context.Background(), "post:7",
		func(ctx context.Context) (bool, error) { return false, errRemoteDown },
		func(ctx context.Context, next bool) error {
			remoteCalled = true
			return nil
		})

	assert.ErrorIs(t, err, errRemoteDown)
	assert.False(t, remoteCalled)
	_, known := cache.FlagKnown("post:7")
	assert.False(t, known)
}

func TestIndependentKeysDoNotInterfere(t *testing.T) {
	cache := NewCache()
	coord := NewCoordinator(cache, isDup)

	_, err := coord.Toggle(context.Background(), "a", okRemote)
	require.NoError(t, err)
	_, err = coord.Toggle(context.Background(), "b", func(ctx context.Context, next bool) error {
		return errRemoteDown
	})
	assert.Error(t, err)

	assert.True(t, cache.Flag("a"))
	assert.False(t, cache.Flag("b"))
	assert.Equal(t, StateCommitted, coord.State("a"))
	assert.Equal(t, StateRolledBack, coord.State("b"))
}

func TestCacheCounters(t *testing.T) {
	cache := NewCache()
	assert.EqualValues(t, 0, cache.Count("likes:1"))

	assert.EqualValues(t, 1, cache.AddCount("likes:1", 1))
	assert.EqualValues(t, 3, cache.AddCount("likes:1", 2))
	cache.SetCount("likes:1", 10)
	assert.EqualValues(t, 10, cache.Count("likes:1"))

	cache.Forget("likes:1")
	assert.EqualValues(t, 0, cache.Count("likes:1"))
}
