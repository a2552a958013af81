package service

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/optimistic"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"strings"
	"time"
)

// MarkStore 统一的标记存储抽象。登录用户的点赞/收藏落数据库行，
// 匿名访客落设备维度的 Redis 集合，调用方按登录态拿到对应实现。
type MarkStore interface {
	Has(ctx context.Context, postID uint64) (bool, error)
	Add(ctx context.Context, postID uint64) error
	Remove(ctx context.Context, postID uint64) error
	ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error)
}

// dbLikeStore 登录用户的点赞标记，存数据库行
type dbLikeStore struct {
	repo   repository.PostActionRepo
	userID uint64
}

func (s *dbLikeStore) Has(ctx context.Context, postID uint64) (bool, error) {
	return s.repo.CheckLikeExists(ctx, s.userID, postID)
}

func (s *dbLikeStore) Add(ctx context.Context, postID uint64) error {
	return s.repo.CreateLike(ctx, &model.Like{UserID: s.userID, PostID: postID, CreatedAt: time.Now()})
}

func (s *dbLikeStore) Remove(ctx context.Context, postID uint64) error {
	_, err := s.repo.DeleteLike(ctx, s.userID, postID)
	return err
}

func (s *dbLikeStore) ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error) {
	return s.repo.GetLikedPostIDs(ctx, s.userID, limit, offset)
}

// dbBookmarkStore 登录用户的收藏标记
type dbBookmarkStore struct {
	repo   repository.PostActionRepo
	userID uint64
}

func (s *dbBookmarkStore) Has(ctx context.Context, postID uint64) (bool, error) {
	return s.repo.CheckBookmarkExists(ctx, s.userID, postID)
}

func (s *dbBookmarkStore) Add(ctx context.Context, postID uint64) error {
	return s.repo.CreateBookmark(ctx, &model.Bookmark{UserID: s.userID, PostID: postID, CreatedAt: time.Now()})
}

func (s *dbBookmarkStore) Remove(ctx context.Context, postID uint64) error {
	_, err := s.repo.DeleteBookmark(ctx, s.userID, postID)
	return err
}

func (s *dbBookmarkStore) ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error) {
	return s.repo.GetBookmarkedPostIDs(ctx, s.userID, limit, offset)
}

// anonMarkStore 匿名访客的标记，设备维度的 Redis 集合。
// 没有设备标识时退化为永远为空且不可写的集合。
type anonMarkStore struct {
	key string
}

func newAnonMarkStore(prefix, deviceID string) *anonMarkStore {
	if deviceID == "" {
		return &anonMarkStore{}
	}
	return &anonMarkStore{key: prefix + deviceID}
}

func (s *anonMarkStore) Has(ctx context.Context, postID uint64) (bool, error) {
	if s.key == "" {
		return false, nil
	}
	return redis.SIsMember(ctx, s.key, strconv.FormatUint(postID, 10))
}

func (s *anonMarkStore) Add(ctx context.Context, postID uint64) error {
	if s.key == "" {
		return ErrParamInvalid
	}
	return redis.SAdd(ctx, s.key, strconv.FormatUint(postID, 10))
}

func (s *anonMarkStore) Remove(ctx context.Context, postID uint64) error {
	if s.key == "" {
		return ErrParamInvalid
	}
	return redis.SRem(ctx, s.key, strconv.FormatUint(postID, 10))
}

// ListPostIDs 集合成员无时序，分页参数忽略，全量返回
func (s *anonMarkStore) ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error) {
	if s.key == "" {
		return nil, nil
	}
	members, err := redis.SMembers(ctx, s.key)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		if id, err := strconv.ParseUint(m, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fileMarkStore 单机部署的匿名标记实现：全部设备共用一个文件键集合，
// 成员编码为 "<前缀><设备ID>:<帖子ID>"
type fileMarkStore struct {
	set    optimistic.KeySet
	prefix string
}

func (s *fileMarkStore) member(postID uint64) string {
	return s.prefix + ":" + strconv.FormatUint(postID, 10)
}

func (s *fileMarkStore) Has(_ context.Context, postID uint64) (bool, error) {
	return s.set.Has(s.member(postID)), nil
}

func (s *fileMarkStore) Add(_ context.Context, postID uint64) error {
	return s.set.Add(s.member(postID))
}

func (s *fileMarkStore) Remove(_ context.Context, postID uint64) error {
	return s.set.Remove(s.member(postID))
}

func (s *fileMarkStore) ListPostIDs(_ context.Context, limit, offset int) ([]uint64, error) {
	want := s.prefix + ":"
	var ids []uint64
	for _, member := range s.set.All() {
		if !strings.HasPrefix(member, want) {
			continue
		}
		if id, err := strconv.ParseUint(strings.TrimPrefix(member, want), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
