package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type NotifyHandler struct {
	notifySvc service.NotifyService
}

func NewNotifyHandler(notifySvc service.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifySvc: notifySvc}
}

func (s *NotifyHandler) GetList(c *gin.Context) {
	page, pageSize := pageQuery(c)
	userID := c.GetUint64("user_id")

	list, err := s.notifySvc.GetList(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotifyHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	count, err := s.notifySvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"unread_count": count})
}

func (s *NotifyHandler) MarkAsRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	err := s.notifySvc.MarkAsRead(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotifyHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.notifySvc.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
