package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	NotifyTypeLike     int8 = 1
	NotifyTypeBookmark int8 = 2
	NotifyTypeComment  int8 = 3
	NotifyTypeMessage  int8 = 4
)

// Notification 站内通知模型
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 消息接收者ID
	SenderID   uint64             `bson:"sender_id" json:"senderId"`     // 动作发起者ID (系统通知可为0)
	Type       int8               `bson:"type" json:"type"`              // 通知类型: 1-点赞, 2-收藏, 3-评论, 4-私信
	TargetID   uint64             `bson:"target_id" json:"targetId"`     // 关联的目标ID (如帖子ID)
	Content    string             `bson:"content" json:"content"`        // 通知文案预览
	IsRead     bool               `bson:"is_read" json:"isRead"`         // 是否已读
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`   // 创建时间
}
