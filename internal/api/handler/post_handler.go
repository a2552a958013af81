package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var createDTO dto.PostCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.PostUpdateDTO
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
	err = s.postSvc.UpdatePost(c.Request.Context(), userID, isAdmin(c), id, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	err := s.postSvc.DeletePost(c.Request.Context(), userID, isAdmin(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// PinPost 管理端置顶/取消置顶，pinned=true 置顶
func (s *PostHandler) PinPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	pinned, err := strconv.ParseBool(c.DefaultQuery("pinned", "true"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err = s.postSvc.PinPost(c.Request.Context(), id, pinned)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	page, pageSize := pageQuery(c)
	query := service.PostQuery{
		Type:     c.Query("type"),
		Tag:      c.Query("tag"),
		Page:     page,
		PageSize: pageSize,
	}

	list, err := s.postSvc.ListPosts(c.Request.Context(), currentIdentity(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ListAllPosts 管理端列表，包含私密与未公开内容
func (s *PostHandler) ListAllPosts(c *gin.Context) {
	page, pageSize := pageQuery(c)
	query := service.PostQuery{
		Type:     c.Query("type"),
		Tag:      c.Query("tag"),
		Page:     page,
		PageSize: pageSize,
	}

	list, err := s.postSvc.ListAllPosts(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	var searchDTO dto.PostSearchDTO
	err := c.ShouldBindQuery(&searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.postSvc.SearchPosts(c.Request.Context(), currentIdentity(c), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *PostHandler) GetBookmarkedPosts(c *gin.Context) {
	page, pageSize := pageQuery(c)
	list, err := s.postSvc.GetBookmarkedPosts(c.Request.Context(), currentIdentity(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
