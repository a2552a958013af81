package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) error
	Login(ctx context.Context, cred *dto.CredentialDTO, deviceID string) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateUserInfo(ctx context.Context, id uint64, update *dto.UserUpdateDTO) error
	UpdateTheme(ctx context.Context, userID uint64, deviceID string, theme string) error
	GetTheme(ctx context.Context, userID uint64, deviceID string) (string, error)
	BanUser(ctx context.Context, operatorID, id uint64) error
	UnBanUser(ctx context.Context, id uint64) error
	ListUsers(ctx context.Context, page, pageSize int) (*dto.UserListDTO, error)
}

// MarkMigrator 登录时将匿名标记迁移为账号数据
type MarkMigrator interface {
	MigrateAnonymous(ctx context.Context, deviceID string, userID uint64) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	migrator MarkMigrator
}

func NewUserService(userRepo repository.UserRepo, migrator MarkMigrator) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		migrator: migrator,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	inviteCode := config.Cfg.Invite.Code
	if inviteCode != "" && regDTO.InviteCode != inviteCode {
		return ErrInviteCodeIncorrect
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	nickname := regDTO.Nickname
	if nickname == "" {
		nickname = regDTO.Username
	}

	user := &model.User{
		Username:     regDTO.Username,
		PasswordHash: passwordHash,
		Nickname:     nickname,
		AvatarURL:    consts.DefaultAvatarURL,
		Theme:        consts.ThemeLight,
	}
	return s.userRepo.CreateUser(ctx, user)
}

// Login 校验凭据并签发 Token；携带设备标识时顺带迁移匿名标记
func (s *UserServiceImpl) Login(ctx context.Context, cred *dto.CredentialDTO, deviceID string) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, cred.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBanned {
		return nil, ErrUserBan
	}
	if err := security.CheckPasswordHash(cred.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Roles())
	if err != nil {
		return nil, err
	}

	if deviceID != "" && s.migrator != nil {
		if err := s.migrator.MigrateAnonymous(ctx, deviceID, user.ID); err != nil {
			// 迁移失败不阻断登录
			log.Warn("匿名标记迁移失败", "deviceID", deviceID, "userID", user.ID, "err", err)
		}
	}

	return &dto.LoginResultDTO{
		Token: token,
		User:  s.toUserDTO(user),
	}, nil
}

// Logout 将 Token 签名拉黑，有效期与 Token 剩余寿命对齐
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user), nil
}

func (s *UserServiceImpl) UpdateUserInfo(ctx context.Context, id uint64, update *dto.UserUpdateDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if update.Nickname != nil {
		user.Nickname = *update.Nickname
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	return s.userRepo.UpdateUser(ctx, user)
}

// UpdateTheme 登录用户写入账号偏好，匿名用户按设备标识存入 Redis
func (s *UserServiceImpl) UpdateTheme(ctx context.Context, userID uint64, deviceID string, theme string) error {
	if theme != consts.ThemeLight && theme != consts.ThemeDark {
		return ErrThemeInvalid
	}
	if userID > 0 {
		return s.userRepo.UpdateUserTheme(ctx, userID, theme)
	}
	if deviceID == "" {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, consts.AnonThemeKey+deviceID, theme, 30*24*time.Hour)
}

func (s *UserServiceImpl) GetTheme(ctx context.Context, userID uint64, deviceID string) (string, error) {
	if userID > 0 {
		user, err := s.userRepo.GetUserById(ctx, userID)
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", ErrUserNotFound
		}
		return user.Theme, nil
	}
	theme, err := redis.GetValue(ctx, consts.AnonThemeKey+deviceID)
	if err != nil {
		return "", err
	}
	if theme == "" {
		theme = consts.ThemeLight
	}
	return theme, nil
}

func (s *UserServiceImpl) BanUser(ctx context.Context, operatorID, id uint64) error {
	if operatorID == id {
		return ErrUserBanSelf
	}
	target, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.IsAdmin {
		return ErrUserBanAdmin
	}
	rows, err := s.userRepo.UpdateUserIsBan(ctx, id, true)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) UnBanUser(ctx context.Context, id uint64) error {
	rows, err := s.userRepo.UpdateUserIsBan(ctx, id, false)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, pageSize int) (*dto.UserListDTO, error) {
	users, total, err := s.userRepo.ListUsers(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		list = append(list, s.toUserDTO(u))
	}
	return &dto.UserListDTO{List: list, Total: total}, nil
}

func (s *UserServiceImpl) toUserDTO(user *model.User) *dto.UserDTO {
	d := &dto.UserDTO{}
	_ = copier.Copy(d, user)
	d.UserID = user.ID
	d.AvatarURL = minio.GetPublicURL(user.AvatarURL)
	return d
}
