package model

import (
	"time"
)

const (
	ConversationTypeDirect int8 = 1 // 单聊
	ConversationTypeGlobal int8 = 2 // 全站公共聊天室
)

// Conversation 会话主表，MaxMsgSeq 作为会话内消息的定序器
type Conversation struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Type           int8      `gorm:"not null;default:1" json:"type"`
	PeerKey        string    `gorm:"uniqueIndex;type:varchar(64)" json:"peer_key"` // uid1_uid2，小 ID 在前
	MaxMsgSeq      uint64    `gorm:"not null;default:0" json:"max_msg_seq"`
	LastMsgContent string    `gorm:"type:varchar(255)" json:"last_msg_content"`
	LastSenderID   uint64    `gorm:"not null;default:0" json:"last_sender_id"`
	LastMessageAt  time.Time `gorm:"index" json:"last_message_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationMember 会话成员表，ReadMsgSeq 记录已读进度
type ConversationMember struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"uniqueIndex:idx_conv_user" json:"conversation_id"`
	UserID         uint64    `gorm:"uniqueIndex:idx_conv_user;index" json:"user_id"`
	ReadMsgSeq     uint64    `gorm:"not null;default:0" json:"read_msg_seq"`
	JoinedAt       time.Time `json:"joined_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"conversation"`

	// 虚拟字段：仅读不写，存储 SQL 计算出的未读数
	UnreadCount uint64 `gorm:"->" json:"unread_count"`
}

func (ConversationMember) TableName() string {
	return "conversation_members"
}
