package dto

import "time"

// RegisterDTO 注册请求，站点私有部署需携带邀请码
type RegisterDTO struct {
	Username   string `json:"username" validate:"required,min=3,max=20"`
	Password   string `json:"password" validate:"required,min=6,max=64"`
	Nickname   string `json:"nickname" validate:"omitempty,max=15"`
	InviteCode string `json:"invite_code"`
}

// CredentialDTO 登录凭据
type CredentialDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResultDTO 登录结果，附带服务端保存的主题偏好
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

type UserDTO struct {
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	Theme     string    `json:"theme"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdateDTO 修改个人资料
type UserUpdateDTO struct {
	Nickname  *string `json:"nickname" validate:"omitempty,max=15"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio" validate:"omitempty,max=200"`
}

// ThemeDTO 主题偏好
type ThemeDTO struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// UserListDTO 管理端用户列表
type UserListDTO struct {
	List  []*UserDTO `json:"list"`
	Total int64      `json:"total"`
}
