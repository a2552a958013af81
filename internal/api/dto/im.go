package dto

import "time"

// SendMessageReq 发送消息请求体
// ClientMsgID 为客户端生成的幂等键，重发同一条消息不会产生重复记录
type SendMessageReq struct {
	ConversationID uint64 `json:"conversation_id"`
	TargetUserID   uint64 `json:"target_user_id"`
	Content        string `json:"content" binding:"required,max=2000"`
	ClientMsgID    string `json:"client_msg_id" binding:"required,max=64"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string    `json:"id,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	SenderID       uint64    `json:"sender_id"`
	Content        string    `json:"content"`
	ClientMsgID    string    `json:"client_msg_id"`
	Seq            uint64    `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	Type           int8      `json:"type"`
	PeerID         uint64    `json:"peer_id"` // 对手方ID (单聊有效)
	LastMsgContent string    `json:"last_msg_content"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    uint64    `json:"unread_count"`
}

// MarkAsReadReq 标记为已读请求
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"`
}
