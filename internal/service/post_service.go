package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// PostQuery 列表查询参数
type PostQuery struct {
	Type     string
	Tag      string
	Page     int
	PageSize int
}

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.PostUpdateDTO) error
	DeletePost(ctx context.Context, userID uint64, isAdmin bool, id uint64) error
	PinPost(ctx context.Context, id uint64, pinned bool) error
	GetPost(ctx context.Context, ident Identity, id uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, ident Identity, query PostQuery) (*dto.PostListDTO, error)
	ListAllPosts(ctx context.Context, query PostQuery) (*dto.PostListDTO, error)
	SearchPosts(ctx context.Context, ident Identity, req *dto.PostSearchDTO) (*dto.PostListDTO, error)
	GetBookmarkedPosts(ctx context.Context, ident Identity, page, pageSize int) (*dto.PostListDTO, error)
	UpdatePostCounts(ctx context.Context, id uint64, likes, comments, views int64) error
}

type postServiceImpl struct {
	postRepo      repository.PostRepo
	actionService PostActionService
	esRepo        es.PostRepo
}

func NewPostService(postRepo repository.PostRepo, actionService PostActionService, esRepo es.PostRepo) PostService {
	return &postServiceImpl{
		postRepo:      postRepo,
		actionService: actionService,
		esRepo:        esRepo,
	}
}

// CreatePost 发布内容，标签从正文的 #话题 中提取
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if req.Type == consts.PostTypeArticle && req.Title == "" {
		return nil, ErrParamInvalid
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	post := &model.Post{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Type:      req.Type,
		Tags:      util.ExtractTags(req.Content),
		IsPublic:  isPublic,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.toPostDTO(ctx, post, Identity{UserID: userID}), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.PostUpdateDTO) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return UnauthorizedError
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
		post.Tags = util.ExtractTags(*req.Content)
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}
	post.UpdatedAt = time.Now()
	return s.postRepo.UpdatePost(ctx, post)
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, isAdmin bool, id uint64) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return UnauthorizedError
	}
	return s.postRepo.DeletePost(ctx, id)
}

func (s *postServiceImpl) PinPost(ctx context.Context, id uint64, pinned bool) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.postRepo.UpdatePinned(ctx, id, pinned)
}

// GetPost 读取明细并记一次浏览；私密内容只有作者可见
func (s *postServiceImpl) GetPost(ctx context.Context, ident Identity, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.IsPublic && post.UserID != ident.UserID {
		return nil, ErrPostNotFound
	}

	if err := s.actionService.TrackPostView(ctx, id); err != nil {
		log.Warn("浏览计数失败", "postID", id, "err", err)
	}

	return s.toPostDTO(ctx, post, ident), nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, ident Identity, query PostQuery) (*dto.PostListDTO, error) {
	// 标签筛选优先走 ES 的精确 term 查询，比数据库 JSON LIKE 可靠
	if query.Tag != "" {
		hits, err := s.esRepo.GetByTag(ctx, query.Tag, (query.Page-1)*query.PageSize, query.PageSize)
		if err == nil {
			ids := make([]uint64, 0, len(hits))
			for _, h := range hits {
				ids = append(ids, h.ID)
			}
			return s.expandByIDs(ctx, ids, ident)
		}
		log.WarnContext(ctx, "ES 标签查询失败，降级数据库筛选", "tag", query.Tag, "err", err)
	}

	posts, total, err := s.postRepo.ListPosts(ctx, repository.PostListFilter{
		Type:       query.Type,
		Tag:        query.Tag,
		OnlyPublic: true,
		Limit:      query.PageSize,
		Offset:     (query.Page - 1) * query.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return s.toPostListDTO(ctx, posts, total, ident), nil
}

// ListAllPosts 管理端列表，包含私密内容
func (s *postServiceImpl) ListAllPosts(ctx context.Context, query PostQuery) (*dto.PostListDTO, error) {
	posts, total, err := s.postRepo.ListPosts(ctx, repository.PostListFilter{
		Type:   query.Type,
		Tag:    query.Tag,
		Limit:  query.PageSize,
		Offset: (query.Page - 1) * query.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return s.toPostListDTO(ctx, posts, total, Identity{}), nil
}

// SearchPosts 全文检索走 ES，命中后回源数据库补全最新状态；
// ES 不可用时降级为数据库 LIKE 模糊查询
func (s *postServiceImpl) SearchPosts(ctx context.Context, ident Identity, req *dto.PostSearchDTO) (*dto.PostListDTO, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	hits, err := s.esRepo.Search(ctx, req.Keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		log.WarnContext(ctx, "ES 检索失败，降级数据库模糊查询", "keyword", req.Keyword, "err", err)
		posts, total, dbErr := s.postRepo.SearchPosts(ctx, req.Keyword, pageSize, (page-1)*pageSize)
		if dbErr != nil {
			return nil, dbErr
		}
		return s.toPostListDTO(ctx, posts, total, ident), nil
	}

	ids := make([]uint64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	return s.expandByIDs(ctx, ids, ident)
}

func (s *postServiceImpl) GetBookmarkedPosts(ctx context.Context, ident Identity, page, pageSize int) (*dto.PostListDTO, error) {
	ids, err := s.actionService.GetBookmarkedPostIDs(ctx, ident, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.expandByIDs(ctx, ids, ident)
}

// UpdatePostCounts 将缓存计数回写数据库，供定时对账任务调用
func (s *postServiceImpl) UpdatePostCounts(ctx context.Context, id uint64, likes, comments, views int64) error {
	return s.postRepo.SetCounters(ctx, id, likes, comments, views)
}

func (s *postServiceImpl) expandByIDs(ctx context.Context, ids []uint64, ident Identity) (*dto.PostListDTO, error) {
	if len(ids) == 0 {
		return &dto.PostListDTO{List: []*dto.PostDTO{}}, nil
	}
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 保持传入 ID 的顺序
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.toPostListDTO(ctx, ordered, int64(len(ordered)), ident), nil
}

func (s *postServiceImpl) toPostListDTO(ctx context.Context, posts []*model.Post, total int64, ident Identity) *dto.PostListDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, s.toPostDTO(ctx, p, ident))
	}
	return &dto.PostListDTO{List: list, Total: total}
}

func (s *postServiceImpl) toPostDTO(ctx context.Context, post *model.Post, ident Identity) *dto.PostDTO {
	d := &dto.PostDTO{
		ID:        post.ID,
		Type:      post.Type,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      post.Tags,
		IsPublic:  post.IsPublic,
		IsPinned:  post.IsPinned,
		CreatedAt: post.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: post.UpdatedAt.Format("2006-01-02 15:04:05"),
		UserID:    post.UserID,
	}
	if post.User.ID > 0 {
		d.Nickname = post.User.Nickname
		d.AvatarURL = minio.GetPublicURL(post.User.AvatarURL)
	}

	d.LikesCount, _ = s.actionService.GetPostLikeCount(ctx, post.ID)
	d.CommentsCount, _ = s.actionService.GetPostCommentCount(ctx, post.ID)
	d.ViewsCount, _ = s.actionService.GetPostViewCount(ctx, post.ID)
	d.IsLiked, _ = s.actionService.IsLiked(ctx, ident, post.ID)
	d.IsBookmarked, _ = s.actionService.IsBookmarked(ctx, ident, post.ID)
	return d
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	return page, pageSize
}
