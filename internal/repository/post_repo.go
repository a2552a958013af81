package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PostListFilter 公开列表的筛选条件，零值字段不参与过滤
type PostListFilter struct {
	Type       string
	Tag        string
	OnlyPublic bool
	Limit      int
	Offset     int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	ListPosts(ctx context.Context, filter PostListFilter) ([]*model.Post, int64, error)
	SearchPosts(ctx context.Context, keyword string, limit, offset int) ([]*model.Post, int64, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	UpdatePinned(ctx context.Context, id uint64, pinned bool) error
	DeletePost(ctx context.Context, id uint64) error
	IncrCounter(ctx context.Context, id uint64, column string, delta int64) error
	SetCounters(ctx context.Context, id uint64, likes, comments, views int64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ?", false).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPosts 置顶优先，其余按发布时间倒序
func (s *PostRepoImpl) ListPosts(ctx context.Context, filter PostListFilter) ([]*model.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("is_deleted = ?", false)
	if filter.OnlyPublic {
		query = query.Where("is_public = ?", true)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Tag != "" {
		// tags 为 JSON 数组，用 LIKE 做包含匹配
		query = query.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := query.Preload("User").
		Order("is_pinned DESC, created_at DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&posts).Error
	return posts, total, err
}

// SearchPosts 标题与正文的 LIKE 模糊检索，只含公开内容，检索引擎不可用时兜底
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, limit, offset int) ([]*model.Post, int64, error) {
	pattern := "%" + keyword + "%"
	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("is_deleted = ?", false).
		Where("is_public = ?", true).
		Where("title LIKE ? OR content LIKE ?", pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, total, err
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Updates(post).Error
}

func (s *PostRepoImpl) UpdatePinned(ctx context.Context, id uint64, pinned bool) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_pinned", pinned).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// IncrCounter 原子增减计数列，防止并发丢更新
func (s *PostRepoImpl) IncrCounter(ctx context.Context, id uint64, column string, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// SetCounters 全量覆盖计数列，由定时对账任务调用
func (s *PostRepoImpl) SetCounters(ctx context.Context, id uint64, likes, comments, views int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"likes_count":    likes,
			"comments_count": comments,
			"views_count":    views,
		}).Error
}
