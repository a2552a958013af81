package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/optimistic"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const cacheExpiration = 7 * 24 * time.Hour

// Identity 请求方身份：登录用户带 UserID，匿名访客只有设备标识
type Identity struct {
	UserID   uint64
	DeviceID string
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

type PostActionService interface {
	ToggleLike(ctx context.Context, ident Identity, postID uint64) (*dto.ToggleResultDTO, error)
	ToggleBookmark(ctx context.Context, ident Identity, postID uint64) (*dto.ToggleResultDTO, error)
	IsLiked(ctx context.Context, ident Identity, postID uint64) (bool, error)
	IsBookmarked(ctx context.Context, ident Identity, postID uint64) (bool, error)
	GetActionState(ctx context.Context, ident Identity, postID uint64) (*dto.PostActionStateDTO, error)

	GetPostLikeCount(ctx context.Context, postID uint64) (int64, error)
	GetPostBookmarkCount(ctx context.Context, postID uint64) (int64, error)
	GetPostCommentCount(ctx context.Context, postID uint64) (int64, error)
	GetPostViewCount(ctx context.Context, postID uint64) (int64, error)
	TrackPostView(ctx context.Context, postID uint64) error

	GetBookmarkedPostIDs(ctx context.Context, ident Identity, page, pageSize int) ([]uint64, error)

	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64) error
	GetCommentsByPostID(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error)

	MigrateAnonymous(ctx context.Context, deviceID string, userID uint64) error
}

type postActionServiceImpl struct {
	actionRepo  repository.PostActionRepo
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
	coordinator *optimistic.Coordinator

	// anonSet 非空时匿名标记走文件键集合（单机部署），否则走 Redis
	anonSet optimistic.KeySet
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
) PostActionService {
	var anonSet optimistic.KeySet
	if cfg := config.Cfg; cfg != nil && cfg.Marks.AnonBackend == "file" {
		set, err := optimistic.OpenFileSet(cfg.Marks.File)
		if err != nil {
			log.Error("打开匿名标记文件失败，回退 Redis 存储", "path", cfg.Marks.File, "err", err)
		} else {
			anonSet = set
		}
	}

	return &postActionServiceImpl{
		actionRepo:  actionRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		coordinator: optimistic.NewCoordinator(optimistic.NewCache(), isDuplicateError),
		anonSet:     anonSet,
	}
}

// ToggleLike 点赞开关：先翻转本地缓存，远端失败自动回滚
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, ident Identity, postID uint64) (*dto.ToggleResultDTO, error) {
	if _, err := s.getPostCheck(ctx, postID); err != nil {
		return nil, err
	}

	store := s.likeStore(ident)
	key := "like:" + ident.markSuffix() + ":" + strconv.FormatUint(postID, 10)
	active, err := s.coordinator.ToggleWithSeed(ctx, key, func(ctx context.Context) (bool, error) {
		return store.Has(ctx, postID)
	}, func(ctx context.Context, next bool) error {
		if next {
			return store.Add(ctx, postID)
		}
		return store.Remove(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	count, _ := s.GetPostLikeCount(ctx, postID)
	return &dto.ToggleResultDTO{Active: active, Count: count}, nil
}

// ToggleBookmark 收藏开关，流程与点赞一致
func (s *postActionServiceImpl) ToggleBookmark(ctx context.Context, ident Identity, postID uint64) (*dto.ToggleResultDTO, error) {
	if _, err := s.getPostCheck(ctx, postID); err != nil {
		return nil, err
	}

	store := s.bookmarkStore(ident)
	key := "bookmark:" + ident.markSuffix() + ":" + strconv.FormatUint(postID, 10)
	active, err := s.coordinator.ToggleWithSeed(ctx, key, func(ctx context.Context) (bool, error) {
		return store.Has(ctx, postID)
	}, func(ctx context.Context, next bool) error {
		if next {
			return store.Add(ctx, postID)
		}
		return store.Remove(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	count, _ := s.GetPostBookmarkCount(ctx, postID)
	return &dto.ToggleResultDTO{Active: active, Count: count}, nil
}

// likeStore 按身份选择点赞标记的存储实现
func (s *postActionServiceImpl) likeStore(ident Identity) MarkStore {
	if ident.IsAnonymous() {
		return s.anonStore(consts.AnonLikeKey, ident.DeviceID)
	}
	return &dbLikeStore{repo: s.actionRepo, userID: ident.UserID}
}

func (s *postActionServiceImpl) bookmarkStore(ident Identity) MarkStore {
	if ident.IsAnonymous() {
		return s.anonStore(consts.AnonBookmarkKey, ident.DeviceID)
	}
	return &dbBookmarkStore{repo: s.actionRepo, userID: ident.UserID}
}

func (s *postActionServiceImpl) anonStore(prefix, deviceID string) MarkStore {
	if deviceID == "" {
		return &anonMarkStore{}
	}
	if s.anonSet != nil {
		return &fileMarkStore{set: s.anonSet, prefix: prefix + deviceID}
	}
	return newAnonMarkStore(prefix, deviceID)
}

func (s *postActionServiceImpl) IsLiked(ctx context.Context, ident Identity, postID uint64) (bool, error) {
	return s.likeStore(ident).Has(ctx, postID)
}

func (s *postActionServiceImpl) IsBookmarked(ctx context.Context, ident Identity, postID uint64) (bool, error) {
	return s.bookmarkStore(ident).Has(ctx, postID)
}

func (s *postActionServiceImpl) GetActionState(ctx context.Context, ident Identity, postID uint64) (*dto.PostActionStateDTO, error) {
	state := &dto.PostActionStateDTO{}
	state.LikeCount, _ = s.GetPostLikeCount(ctx, postID)
	state.BookmarkCount, _ = s.GetPostBookmarkCount(ctx, postID)
	state.CommentCount, _ = s.GetPostCommentCount(ctx, postID)
	state.ViewCount, _ = s.GetPostViewCount(ctx, postID)
	state.IsLiked, _ = s.IsLiked(ctx, ident, postID)
	state.IsBookmarked, _ = s.IsBookmarked(ctx, ident, postID)
	return state, nil
}

func (s *postActionServiceImpl) GetPostLikeCount(ctx context.Context, postID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.PostLikeKey, postID, s.actionRepo.GetLikeCountByPostID)
}

func (s *postActionServiceImpl) GetPostBookmarkCount(ctx context.Context, postID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.PostBookmarkKey, postID, s.actionRepo.GetBookmarkCountByPostID)
}

func (s *postActionServiceImpl) GetPostCommentCount(ctx context.Context, postID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.PostCommentKey, postID, s.actionRepo.GetCommentCountByPostID)
}

func (s *postActionServiceImpl) GetPostViewCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostViewKey + strconv.FormatUint(postID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, int64(post.ViewsCount), cacheExpiration)
	return int64(post.ViewsCount), nil
}

// TrackPostView 浏览计数只进 Redis，由定时任务批量回写数据库
func (s *postActionServiceImpl) TrackPostView(ctx context.Context, postID uint64) error {
	if _, err := s.GetPostViewCount(ctx, postID); err != nil {
		return err
	}
	key := consts.PostViewKey + strconv.FormatUint(postID, 10)
	if _, err := redis.Incr(ctx, key); err != nil {
		return err
	}
	return redis.SAdd(ctx, consts.PostDirtyKey, strconv.FormatUint(postID, 10))
}

func (s *postActionServiceImpl) GetBookmarkedPostIDs(ctx context.Context, ident Identity, page, pageSize int) ([]uint64, error) {
	return s.bookmarkStore(ident).ListPostIDs(ctx, pageSize, (page-1)*pageSize)
}

func (s *postActionServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if _, err := s.getPostCheck(ctx, req.PostID); err != nil {
		return nil, err
	}

	var parentID uint64
	if req.ParentID > 0 {
		parent, err := s.actionRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil || parent == nil {
			return nil, ErrPostCommentNotFound
		}
		if parent.PostID != req.PostID {
			return nil, ErrPostCommentNotFound
		}
		// 只允许一层嵌套，对回复的回复挂到同一个顶级评论下
		if parent.ParentID > 0 {
			parentID = parent.ParentID
		} else {
			parentID = parent.ID
		}
	}

	comment := &model.Comment{
		PostID:    req.PostID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   req.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.toCommentDTO(comment), nil
}

func (s *postActionServiceImpl) DeleteComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil || comment == nil {
		return ErrPostCommentNotFound
	}
	if comment.UserID != userID && !isAdmin {
		return UnauthorizedError
	}
	if err := s.actionRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	// 连带删除回复，计数缓存直接失效等待回源
	_ = redis.DeleteKey(ctx, consts.PostCommentKey+strconv.FormatUint(comment.PostID, 10))
	return nil
}

func (s *postActionServiceImpl) GetCommentsByPostID(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	roots, err := s.actionRepo.GetRootCommentsByPostID(ctx, postID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(roots))
	for _, rc := range roots {
		rootDTO := s.toCommentDTO(rc)
		replies, err := s.actionRepo.GetRepliesByParentID(ctx, rc.ID)
		if err != nil {
			return nil, err
		}
		for _, reply := range replies {
			rootDTO.Replies = append(rootDTO.Replies, s.toCommentDTO(reply))
		}
		res = append(res, rootDTO)
	}
	return res, nil
}

// MigrateAnonymous 将设备维度的匿名标记落为账号数据，重复标记按幂等处理
func (s *postActionServiceImpl) MigrateAnonymous(ctx context.Context, deviceID string, userID uint64) error {
	anon := Identity{DeviceID: deviceID}
	owner := Identity{UserID: userID}

	pairs := []struct{ from, to MarkStore }{
		{s.likeStore(anon), s.likeStore(owner)},
		{s.bookmarkStore(anon), s.bookmarkStore(owner)},
	}
	for _, p := range pairs {
		ids, err := p.from.ListPostIDs(ctx, 0, 0)
		if err != nil {
			return err
		}
		for _, postID := range ids {
			if err := p.to.Add(ctx, postID); err != nil && !isDuplicateError(err) {
				return err
			}
			_ = p.from.Remove(ctx, postID)
		}
	}

	// 主题偏好一并迁入账号
	theme, err := redis.GetValue(ctx, consts.AnonThemeKey+deviceID)
	if err == nil && theme != "" {
		_ = s.userRepo.UpdateUserTheme(ctx, userID, theme)
	}

	_ = redis.DeleteKey(ctx, consts.AnonThemeKey+deviceID)
	return nil
}

// cachedCount 旁路缓存读取计数，未命中时回源数据库
func (s *postActionServiceImpl) cachedCount(ctx context.Context, prefix string, postID uint64, loader func(context.Context, uint64) (int64, error)) (int64, error) {
	key := prefix + strconv.FormatUint(postID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := loader(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postActionServiceImpl) toCommentDTO(c *model.Comment) *dto.CommentDTO {
	d := &dto.CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if c.User.ID > 0 {
		d.Nickname = c.User.Nickname
		d.AvatarURL = minio.GetPublicURL(c.User.AvatarURL)
	}
	return d
}

func (i Identity) markSuffix() string {
	if i.IsAnonymous() {
		return "d:" + i.DeviceID
	}
	return "u:" + strconv.FormatUint(i.UserID, 10)
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
