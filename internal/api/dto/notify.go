package dto

import "time"

// NotificationDTO 站内通知响应
type NotificationDTO struct {
	ID        string    `json:"id"`
	SenderID  uint64    `json:"sender_id"`
	Type      int8      `json:"type"`
	TargetID  uint64    `json:"target_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListDTO 通知分页列表
type NotificationListDTO struct {
	List        []*NotificationDTO `json:"list"`
	UnreadCount int64              `json:"unread_count"`
}
