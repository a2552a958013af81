package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// downESRepo 模拟完全不可用的检索引擎
type downESRepo struct{}

func (s *downESRepo) IndexPost(ctx context.Context, post *es.PostES, version int64) error {
	return assert.AnError
}

func (s *downESRepo) DeletePost(ctx context.Context, id uint64) error {
	return assert.AnError
}

func (s *downESRepo) Search(ctx context.Context, keyword string, from, size int) ([]*es.PostES, error) {
	return nil, assert.AnError
}

func (s *downESRepo) GetByTag(ctx context.Context, tag string, from, size int) ([]*es.PostES, error) {
	return nil, assert.AnError
}

// cannedESRepo 标签查询返回预置命中
type cannedESRepo struct {
	downESRepo
	tagHits  []uint64
	tagCalls int
}

func (s *cannedESRepo) GetByTag(ctx context.Context, tag string, from, size int) ([]*es.PostES, error) {
	s.tagCalls++
	hits := make([]*es.PostES, 0, len(s.tagHits))
	for _, id := range s.tagHits {
		hits = append(hits, &es.PostES{ID: id})
	}
	return hits, nil
}

func newPostTestEnv(t *testing.T, esRepo es.PostRepo) (PostService, *gorm.DB) {
	t.Helper()
	stubUnreachableRedis(t)

	actionSvc, db := newCommentTestEnv(t)
	return NewPostService(repository.NewPostRepository(db), actionSvc, esRepo), db
}

func TestSearchPostsFallsBackToDatabase(t *testing.T) {
	svc, db := newPostTestEnv(t, &downESRepo{})
	u, _ := seedCommentPost(t, db)

	match := &model.Post{UserID: u.ID, Title: "学习 golang 笔记", Content: "并发模型", Type: "article", IsPublic: true}
	private := &model.Post{UserID: u.ID, Content: "golang 草稿", Type: "article", IsPublic: false}
	other := &model.Post{UserID: u.ID, Content: "无关内容", Type: "article", IsPublic: true}
	require.NoError(t, db.Create(match).Error)
	require.NoError(t, db.Create(private).Error)
	require.NoError(t, db.Create(other).Error)

	res, err := svc.SearchPosts(context.Background(), Identity{}, &dto.PostSearchDTO{Keyword: "golang"})
	require.NoError(t, err)

	require.Len(t, res.List, 1)
	assert.Equal(t, match.ID, res.List[0].ID)
	assert.EqualValues(t, 1, res.Total)
}

func TestListPostsTagGoesThroughSearchIndex(t *testing.T) {
	esRepo := &cannedESRepo{}
	svc, db := newPostTestEnv(t, esRepo)
	u, _ := seedCommentPost(t, db)

	tagged := &model.Post{UserID: u.ID, Content: "记录 #golang", Type: "moment", Tags: model.TagList{"golang"}, IsPublic: true}
	require.NoError(t, db.Create(tagged).Error)
	esRepo.tagHits = []uint64{tagged.ID}

	res, err := svc.ListPosts(context.Background(), Identity{}, PostQuery{Tag: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, esRepo.tagCalls)
	require.Len(t, res.List, 1)
	assert.Equal(t, tagged.ID, res.List[0].ID)
}

func TestListPostsTagFallsBackWhenIndexDown(t *testing.T) {
	svc, db := newPostTestEnv(t, &downESRepo{})
	u, _ := seedCommentPost(t, db)

	tagged := &model.Post{UserID: u.ID, Content: "记录 #golang", Type: "moment", Tags: model.TagList{"golang"}, IsPublic: true}
	require.NoError(t, db.Create(tagged).Error)

	res, err := svc.ListPosts(context.Background(), Identity{}, PostQuery{Tag: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, res.List, 1)
	assert.Equal(t, tagged.ID, res.List[0].ID)
}
