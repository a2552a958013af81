package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)

	CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, postID uint64) (int64, error)
	CheckBookmarkExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetBookmarkedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetRootCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetRepliesByParentID(ctx context.Context, parentID uint64) ([]*model.Comment, error)

	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetBookmarkCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// DeleteLike 返回受影响行数，删除不存在的记录视为 0 行
func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, err
}

func (s *PostActionRepoImpl) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	return s.db.WithContext(ctx).Create(bookmark).Error
}

func (s *PostActionRepoImpl) DeleteBookmark(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Bookmark{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckBookmarkExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetBookmarkedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, err
}

func (s *PostActionRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// DeleteComment 连同该评论下的回复一并软删除
func (s *PostActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("(id = ? OR parent_id = ?) AND is_deleted = ?", commentID, commentID, false).
		Update("is_deleted", true).Error
}

func (s *PostActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// GetRootCommentsByPostID 分页获取帖子的顶级评论
func (s *PostActionRepoImpl) GetRootCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ? AND parent_id = ? AND is_deleted = ?", postID, 0, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

// GetRepliesByParentID 获取某条顶级评论下的全部回复，只有一层嵌套
func (s *PostActionRepoImpl) GetRepliesByParentID(ctx context.Context, parentID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) GetBookmarkCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count, err
}
