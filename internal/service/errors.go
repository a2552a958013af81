package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserBan             = errors.New("用户已被封禁")
	ErrUserBanSelf         = errors.New("不能封禁自己")
	ErrUserBanAdmin        = errors.New("不能封禁管理员")
	ErrUserUsernameExist   = errors.New("用户名已存在")
	ErrPasswordIncorrect   = errors.New("密码错误")
	ErrInviteCodeIncorrect = errors.New("邀请码错误")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostCommentNotFound = errors.New("评论不存在")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrNotifyNotFound      = errors.New("通知不存在")
	ErrTargetUserInvalid   = errors.New("目标用户无效")
	ErrConversation        = errors.New("会话异常")
	ErrThemeInvalid        = errors.New("未知的主题")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUserBan:             Unauthorized,
	ErrUserBanSelf:         Unauthorized,
	ErrUserBanAdmin:        Unauthorized,
	ErrUserUsernameExist:   BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrInviteCodeIncorrect: Unauthorized,
	ErrFileNotSupported:    BadRequest,
	ErrPostNotFound:        NotFound,
	ErrPostCommentNotFound: NotFound,
	ErrActionDuplicate:     BadRequest,
	ErrNotifyNotFound:      NotFound,
	ErrTargetUserInvalid:   BadRequest,
	ErrConversation:        BadRequest,
	ErrThemeInvalid:        BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
