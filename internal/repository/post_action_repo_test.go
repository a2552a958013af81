package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostActionRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	exists, err := repo.CheckLikeExists(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.CreateLike(ctx, &model.Like{UserID: u.ID, PostID: p.ID}))

	exists, err = repo.CheckLikeExists(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.GetLikeCountByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	rows, err := repo.DeleteLike(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	// 重复删除不报错，0 行受影响
	rows, err = repo.DeleteLike(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestLikeDuplicateInsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostActionRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	require.NoError(t, repo.CreateLike(ctx, &model.Like{UserID: u.ID, PostID: p.ID}))

	err := repo.CreateLike(ctx, &model.Like{UserID: u.ID, PostID: p.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBookmarkPostIDsPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostActionRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	for i := 0; i < 3; i++ {
		p := seedPost(t, db, u.ID, nil)
		require.NoError(t, repo.CreateBookmark(ctx, &model.Bookmark{UserID: u.ID, PostID: p.ID}))
	}

	ids, err := repo.GetBookmarkedPostIDs(ctx, u.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	ids, err = repo.GetBookmarkedPostIDs(ctx, u.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestCommentCascadeSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostActionRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	root := &model.Comment{PostID: p.ID, UserID: u.ID, Content: "顶级评论"}
	require.NoError(t, repo.CreateComment(ctx, root))
	reply := &model.Comment{PostID: p.ID, UserID: u.ID, ParentID: root.ID, Content: "回复"}
	require.NoError(t, repo.CreateComment(ctx, reply))

	count, err := repo.GetCommentCountByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// 删除顶级评论时回复一并隐藏
	require.NoError(t, repo.DeleteComment(ctx, root.ID))

	count, err = repo.GetCommentCountByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	got, err := repo.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = repo.GetCommentByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCommentRootsAndReplies(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostActionRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	root := &model.Comment{PostID: p.ID, UserID: u.ID, Content: "顶级"}
	require.NoError(t, repo.CreateComment(ctx, root))
	require.NoError(t, repo.CreateComment(ctx, &model.Comment{PostID: p.ID, UserID: u.ID, ParentID: root.ID, Content: "回复一"}))
	require.NoError(t, repo.CreateComment(ctx, &model.Comment{PostID: p.ID, UserID: u.ID, ParentID: root.ID, Content: "回复二"}))

	roots, err := repo.GetRootCommentsByPostID(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "alice", roots[0].User.Username)

	replies, err := repo.GetRepliesByParentID(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "回复一", replies[0].Content)
}
