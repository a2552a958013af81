package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}

	// 登录时携带设备标识，服务端会把匿名期间的标记与偏好并入账号
	deviceID := c.GetHeader("X-Device-ID")
	result, err := s.userSvc.Login(c.Request.Context(), &loginDTO, deviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	err := s.userSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMyInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	info, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	info, err := s.userSvc.GetUserInfo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *UserHandler) UpdateMyInfo(c *gin.Context) {
	var updateDTO dto.UserUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	err = s.userSvc.UpdateUserInfo(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetTheme 主题偏好：登录用户读账号，匿名用户按设备标识读
func (s *UserHandler) GetTheme(c *gin.Context) {
	ident := currentIdentity(c)
	theme, err := s.userSvc.GetTheme(c.Request.Context(), ident.UserID, ident.DeviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ThemeDTO{Theme: theme})
}

func (s *UserHandler) UpdateTheme(c *gin.Context) {
	var themeDTO dto.ThemeDTO
	err := c.ShouldBind(&themeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	ident := currentIdentity(c)
	err = s.userSvc.UpdateTheme(c.Request.Context(), ident.UserID, ident.DeviceID, themeDTO.Theme)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) BanUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	operatorID := c.GetUint64("user_id")
	err := s.userSvc.BanUser(c.Request.Context(), operatorID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) UnBanUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.userSvc.UnBanUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	list, err := s.userSvc.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
