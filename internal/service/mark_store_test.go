package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBMarkStoreLifecycle(t *testing.T) {
	svc, db := newCommentTestEnv(t)
	u, p := seedCommentPost(t, db)
	impl := svc.(*postActionServiceImpl)
	ctx := context.Background()

	store := impl.likeStore(Identity{UserID: u.ID})

	ok, err := store.Has(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Add(ctx, p.ID))
	ok, err = store.Has(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 重复写入等同唯一键冲突
	err = store.Add(ctx, p.ID)
	assert.True(t, isDuplicateError(err))

	require.NoError(t, store.Remove(ctx, p.ID))
	ok, err = store.Has(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmarkStoreListPostIDs(t *testing.T) {
	svc, db := newCommentTestEnv(t)
	u, p := seedCommentPost(t, db)
	impl := svc.(*postActionServiceImpl)
	ctx := context.Background()

	store := impl.bookmarkStore(Identity{UserID: u.ID})
	require.NoError(t, store.Add(ctx, p.ID))

	ids, err := store.ListPostIDs(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{p.ID}, ids)
}

func TestAnonStoreWithoutDevice(t *testing.T) {
	store := newAnonMarkStore("anon:like:", "")
	ctx := context.Background()

	ok, err := store.Has(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Add(ctx, 1), ErrParamInvalid)
	assert.ErrorIs(t, store.Remove(ctx, 1), ErrParamInvalid)

	ids, err := store.ListPostIDs(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStoreSelectionByIdentity(t *testing.T) {
	svc, _ := newCommentTestEnv(t)
	impl := svc.(*postActionServiceImpl)

	_, isDB := impl.likeStore(Identity{UserID: 42}).(*dbLikeStore)
	assert.True(t, isDB)

	_, isAnon := impl.likeStore(Identity{DeviceID: "dev-1"}).(*anonMarkStore)
	assert.True(t, isAnon)
}
