package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/model"
	inkredis "Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// staleReadActionRepo 模拟永远读到过期快照的存储：存在性检查始终报未点赞，
// 写入走真实的数据库行
type staleReadActionRepo struct {
	repository.PostActionRepo
}

func (s *staleReadActionRepo) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	return false, nil
}

func (s *staleReadActionRepo) CheckBookmarkExists(ctx context.Context, userID, postID uint64) (bool, error) {
	return false, nil
}

// stubUnreachableRedis 把全局客户端指向不可达地址：计数缓存一律未命中，回源数据库
func stubUnreachableRedis(t *testing.T) {
	t.Helper()
	old := inkredis.Rdb
	inkredis.Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { inkredis.Rdb = old })
}

func newToggleTestEnv(t *testing.T) (PostActionService, *gorm.DB) {
	t.Helper()
	stubUnreachableRedis(t)

	svc, db := newCommentTestEnv(t)
	impl := svc.(*postActionServiceImpl)
	impl.actionRepo = &staleReadActionRepo{PostActionRepo: impl.actionRepo}
	return svc, db
}

func TestRapidTogglesResolveToOriginalState(t *testing.T) {
	svc, db := newToggleTestEnv(t)
	u, p := seedCommentPost(t, db)
	ident := Identity{UserID: u.ID}
	ctx := context.Background()

	first, err := svc.ToggleLike(ctx, ident, p.ID)
	require.NoError(t, err)
	assert.True(t, first.Active)

	// 第二次切换时存储仍返回过期的未点赞快照，
	// 种子读不得覆盖第一次已提交的状态
	second, err := svc.ToggleLike(ctx, ident, p.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)

	var count int64
	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRapidBookmarkTogglesResolveToOriginalState(t *testing.T) {
	svc, db := newToggleTestEnv(t)
	u, p := seedCommentPost(t, db)
	ident := Identity{UserID: u.ID}
	ctx := context.Background()

	first, err := svc.ToggleBookmark(ctx, ident, p.ID)
	require.NoError(t, err)
	assert.True(t, first.Active)

	second, err := svc.ToggleBookmark(ctx, ident, p.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)

	var count int64
	require.NoError(t, db.Model(&model.Bookmark{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAnonBackendFileSelectsFileStore(t *testing.T) {
	svc, _ := newCommentTestEnv(t)
	config.Cfg.Marks = config.MarksConfig{
		AnonBackend: "file",
		File:        t.TempDir() + "/anon_marks.json",
	}

	// 后端在构造时决定，需重建服务
	fileSvc := NewPostActionService(
		svc.(*postActionServiceImpl).actionRepo,
		svc.(*postActionServiceImpl).postRepo,
		svc.(*postActionServiceImpl).userRepo,
	)
	impl := fileSvc.(*postActionServiceImpl)

	store, ok := impl.likeStore(Identity{DeviceID: "dev-9"}).(*fileMarkStore)
	require.True(t, ok)
	ctx := context.Background()

	has, err := store.Has(ctx, 7)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Add(ctx, 7))
	require.NoError(t, store.Add(ctx, 8))

	has, err = store.Has(ctx, 7)
	require.NoError(t, err)
	assert.True(t, has)

	ids, err := store.ListPostIDs(ctx, 0, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{7, 8}, ids)

	// 其他设备看不到这台设备的标记
	other := impl.bookmarkStore(Identity{DeviceID: "dev-10"})
	has, err = other.Has(ctx, 7)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Remove(ctx, 7))
	has, err = store.Has(ctx, 7)
	require.NoError(t, err)
	assert.False(t, has)
}
