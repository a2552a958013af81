package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{actionSvc: actionSvc}
}

// ToggleLike 点赞开关，返回本次动作后的状态与计数
func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.actionSvc.ToggleLike(c.Request.Context(), currentIdentity(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostActionHandler) ToggleBookmark(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.actionSvc.ToggleBookmark(c.Request.Context(), currentIdentity(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostActionHandler) GetActionState(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.actionSvc.GetActionState(c.Request.Context(), currentIdentity(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	var createDTO dto.CommentCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	comment, err := s.actionSvc.CreateComment(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	err := s.actionSvc.DeleteComment(c.Request.Context(), userID, isAdmin(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, pageSize := pageQuery(c)
	comments, err := s.actionSvc.GetCommentsByPostID(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}
