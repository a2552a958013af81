package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepoGetHidesDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	got, err := repo.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.User.Username)

	require.NoError(t, repo.DeletePost(ctx, p.ID))

	got, err = repo.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	seedPost(t, db, u.ID, func(p *model.Post) {
		p.Type = "article"
		p.Tags = model.TagList{"golang"}
	})
	seedPost(t, db, u.ID, func(p *model.Post) {
		p.Type = "moment"
		p.Title = ""
		p.Tags = nil
	})
	seedPost(t, db, u.ID, func(p *model.Post) {
		p.IsPublic = false
	})

	posts, total, err := repo.ListPosts(ctx, PostListFilter{OnlyPublic: true, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, posts, 2)

	posts, total, err = repo.ListPosts(ctx, PostListFilter{Type: "moment", OnlyPublic: true, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "moment", posts[0].Type)

	posts, _, err = repo.ListPosts(ctx, PostListFilter{Tag: "golang", OnlyPublic: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Contains(t, []string(posts[0].Tags), "golang")
}

func TestPostRepoPinnedFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	older := seedPost(t, db, u.ID, nil)
	seedPost(t, db, u.ID, nil)

	require.NoError(t, repo.UpdatePinned(ctx, older.ID, true))

	posts, _, err := repo.ListPosts(ctx, PostListFilter{OnlyPublic: true, Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	assert.Equal(t, older.ID, posts[0].ID)
	assert.True(t, posts[0].IsPinned)
}

func TestPostRepoCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, nil)

	require.NoError(t, repo.IncrCounter(ctx, p.ID, "views_count", 3))
	require.NoError(t, repo.IncrCounter(ctx, p.ID, "views_count", -1))

	got, err := repo.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewsCount)

	require.NoError(t, repo.SetCounters(ctx, p.ID, 10, 5, 100))
	got, err = repo.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.LikesCount)
	assert.Equal(t, 5, got.CommentsCount)
	assert.Equal(t, 100, got.ViewsCount)
}

func TestPostRepoSearchLike(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	match := seedPost(t, db, u.ID, func(p *model.Post) { p.Title = "golang 并发"; p.Content = "笔记" })
	seedPost(t, db, u.ID, func(p *model.Post) { p.Content = "golang 草稿"; p.IsPublic = false })
	seedPost(t, db, u.ID, func(p *model.Post) { p.Content = "无关内容" })
	deleted := seedPost(t, db, u.ID, func(p *model.Post) { p.Content = "golang 已删" })
	require.NoError(t, repo.DeletePost(ctx, deleted.ID))

	posts, total, err := repo.SearchPosts(ctx, "golang", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, match.ID, posts[0].ID)
	assert.Equal(t, "alice", posts[0].User.Username)
}
