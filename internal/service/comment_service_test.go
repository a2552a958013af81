package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCommentTestEnv(t *testing.T) (PostActionService, *gorm.DB) {
	t.Helper()
	config.Cfg = &config.Config{}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Like{}, &model.Bookmark{}, &model.Comment{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	svc := NewPostActionService(
		repository.NewPostActionRepo(db),
		repository.NewPostRepository(db),
		repository.NewUserRepo(db),
	)
	return svc, db
}

func seedCommentPost(t *testing.T, db *gorm.DB) (*model.User, *model.Post) {
	t.Helper()
	u := &model.User{Username: "alice", PasswordHash: "x", Nickname: "爱丽丝"}
	require.NoError(t, db.Create(u).Error)
	p := &model.Post{UserID: u.ID, Content: "正文", Type: "article", IsPublic: true}
	require.NoError(t, db.Create(p).Error)
	return u, p
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	svc, _ := newCommentTestEnv(t)

	_, err := svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{
		PostID:  999,
		Content: "评论",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateCommentReplyReparenting(t *testing.T) {
	svc, db := newCommentTestEnv(t)
	u, p := seedCommentPost(t, db)
	ctx := context.Background()

	root, err := svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: p.ID, Content: "顶级"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, root.ParentID)

	reply, err := svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: p.ID, Content: "回复", ParentID: root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, reply.ParentID)

	// 对回复的回复被挂回顶级评论，保持单层嵌套
	nested, err := svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: p.ID, Content: "套娃", ParentID: reply.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, nested.ParentID)

	comments, err := svc.GetCommentsByPostID(ctx, p.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Len(t, comments[0].Replies, 2)
}

func TestCreateCommentParentFromAnotherPost(t *testing.T) {
	svc, db := newCommentTestEnv(t)
	u, p := seedCommentPost(t, db)
	other := &model.Post{UserID: u.ID, Content: "另一篇", Type: "article", IsPublic: true}
	require.NoError(t, db.Create(other).Error)
	ctx := context.Background()

	root, err := svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: p.ID, Content: "顶级"})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: other.ID, Content: "跨帖回复", ParentID: root.ID})
	assert.ErrorIs(t, err, ErrPostCommentNotFound)
}

func TestDeleteCommentRequiresOwnerOrAdmin(t *testing.T) {
	svc, db := newCommentTestEnv(t)
	u, p := seedCommentPost(t, db)
	ctx := context.Background()

	c, err := svc.CreateComment(ctx, u.ID, &dto.CommentCreateDTO{PostID: p.ID, Content: "评论"})
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, u.ID+1, false, c.ID)
	assert.ErrorIs(t, err, UnauthorizedError)
}
