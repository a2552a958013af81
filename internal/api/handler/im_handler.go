package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type IMHandler struct {
	imSvc service.IMService
}

func NewIMHandler(imSvc service.IMService) *IMHandler {
	return &IMHandler{imSvc: imSvc}
}

func (s *IMHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	msg, err := s.imSvc.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

// GetOrCreateConversation 获取与目标用户的单聊会话，不存在则创建
func (s *IMHandler) GetOrCreateConversation(c *gin.Context) {
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	convID, err := s.imSvc.GetOrCreateConversation(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"conversation_id": convID})
}

// JoinGlobalConversation 加入全站公共聊天室
func (s *IMHandler) JoinGlobalConversation(c *gin.Context) {
	userID := c.GetUint64("user_id")
	convID, err := s.imSvc.JoinGlobalConversation(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"conversation_id": convID})
}

// GetChatHistory 向前翻页拉取历史消息，last_seq=0 表示从最新开始
func (s *IMHandler) GetChatHistory(c *gin.Context) {
	convID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	lastSeq, _ := strconv.ParseUint(c.DefaultQuery("last_seq", "0"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := c.GetUint64("user_id")
	msgs, err := s.imSvc.GetChatHistory(c.Request.Context(), userID, convID, lastSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

// SyncMessages 断线重连后按序列号增量补齐
func (s *IMHandler) SyncMessages(c *gin.Context) {
	convID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	afterSeq, _ := strconv.ParseUint(c.DefaultQuery("after_seq", "0"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	userID := c.GetUint64("user_id")
	msgs, err := s.imSvc.SyncMessages(c.Request.Context(), userID, convID, afterSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

func (s *IMHandler) GetConversationList(c *gin.Context) {
	userID := c.GetUint64("user_id")
	list, err := s.imSvc.GetConversationList(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadTotal 全局未读数，客户端角标用
func (s *IMHandler) GetUnreadTotal(c *gin.Context) {
	userID := c.GetUint64("user_id")
	total, err := s.imSvc.GetTotalUnread(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": total})
}

func (s *IMHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	err = s.imSvc.MarkAsRead(c.Request.Context(), userID, req.ConversationID, req.Sequence)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
