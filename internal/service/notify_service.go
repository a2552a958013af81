package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/util"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotifyService interface {
	Push(ctx context.Context, senderID, receiverID uint64, notifyType int8, targetID uint64, preview string) error
	GetList(ctx context.Context, receiverID uint64, page, pageSize int) (*dto.NotificationListDTO, error)
	MarkAsRead(ctx context.Context, receiverID uint64, id string) error
	MarkAllAsRead(ctx context.Context, receiverID uint64) error
	GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error)
}

type notifyServiceImpl struct {
	repo mongo.NotificationRepo
}

func NewNotifyService(repo mongo.NotificationRepo) NotifyService {
	return &notifyServiceImpl{repo: repo}
}

// Push 投递一条站内通知，文案预览超长截断
func (s *notifyServiceImpl) Push(ctx context.Context, senderID, receiverID uint64, notifyType int8, targetID uint64, preview string) error {
	n := &mongo.Notification{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       notifyType,
		TargetID:   targetID,
		Content:    util.Summarize(preview, 60),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	return s.repo.Create(ctx, n)
}

func (s *notifyServiceImpl) GetList(ctx context.Context, receiverID uint64, page, pageSize int) (*dto.NotificationListDTO, error) {
	notifications, err := s.repo.GetList(ctx, receiverID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.GetUnreadCount(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		list = append(list, &dto.NotificationDTO{
			ID:        n.ID.Hex(),
			SenderID:  n.SenderID,
			Type:      n.Type,
			TargetID:  n.TargetID,
			Content:   n.Content,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return &dto.NotificationListDTO{List: list, UnreadCount: unread}, nil
}

func (s *notifyServiceImpl) MarkAsRead(ctx context.Context, receiverID uint64, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotifyNotFound
	}
	return s.repo.MarkAsRead(ctx, receiverID, objectID)
}

func (s *notifyServiceImpl) MarkAllAsRead(ctx context.Context, receiverID uint64) error {
	return s.repo.MarkAllAsRead(ctx, receiverID)
}

func (s *notifyServiceImpl) GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error) {
	return s.repo.GetUnreadCount(ctx, receiverID)
}
