package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const (
	NotFoundCode = 404
	ConflictCode = 409
)

const MaxSearchDepth = 400

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
	Search(ctx context.Context, keyword string, from, size int) ([]*PostES, error)
	GetByTag(ctx context.Context, tag string, from, size int) ([]*PostES, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// IndexPost 以外部版本号写入，过期版本的写入按冲突丢弃
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(PostIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

// Search 标题/正文/标签的全文检索，只返回公开帖子
func (s *PostRepoImpl) Search(ctx context.Context, keyword string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{
					MultiMatch: &types.MultiMatchQuery{
						Query:  keyword,
						Fields: []string{"title^2", "content", "tags"},
					},
				}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{
						"is_public": {Value: true},
					},
				}},
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *PostRepoImpl) GetByTag(ctx context.Context, tag string, from, size int) ([]*PostES, error) {
	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{
					Term: map[string]types.TermQuery{
						"tags": {Value: tag},
					},
				}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{
						"is_public": {Value: true},
					},
				}},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var post PostES
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		results = append(results, &post)
	}
	return results, nil
}
