package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error)
	UpdateUserTheme(ctx context.Context, id uint64, theme string) error
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, int64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Updates(user).Error
}

// UpdateUserIsBan 返回受影响行数，便于上层判断用户是否存在
func (s *UserRepoImpl) UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_banned", isBan)
	return result.RowsAffected, result.Error
}

func (s *UserRepoImpl) UpdateUserTheme(ctx context.Context, id uint64, theme string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("theme", theme).Error
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := make([]*model.User, 0)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}
