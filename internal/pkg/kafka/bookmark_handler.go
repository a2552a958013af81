package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

type BookmarksHandler struct {
	postRepo   repository.PostRepo
	notifyRepo mongo.NotificationRepo
}

func NewBookmarksHandler(postRepo repository.PostRepo, notifyRepo mongo.NotificationRepo) *BookmarksHandler {
	return &BookmarksHandler{
		postRepo:   postRepo,
		notifyRepo: notifyRepo,
	}
}

func (s *BookmarksHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("bookmark consumer setup")
	return nil
}

func (s *BookmarksHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("bookmark consumer cleanup")
	return nil
}

func (s *BookmarksHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-bookmark process batch error", "err", err)
		return err
	}
	return nil
}

func (s *BookmarksHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "bookmarks")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

func (s *BookmarksHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	userID, postID := RowUint64(row, "user_id"), RowUint64(row, "post_id")

	bumpCount(ctx, consts.PostBookmarkKey, postID, 1)
	s.sendBookmarkNotification(ctx, userID, postID)

	log.InfoContext(ctx, "bookmark inserted", "userID", userID, "postID", postID)
	return nil
}

func (s *BookmarksHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	postID := RowUint64(msg.Data[0], "post_id")
	bumpCount(ctx, consts.PostBookmarkKey, postID, -1)

	log.InfoContext(ctx, "bookmark removed", "postID", postID)
	return nil
}

func (s *BookmarksHandler) sendBookmarkNotification(ctx context.Context, senderID, postID uint64) {
	posts, err := s.postRepo.GetPostByIds(ctx, []uint64{postID})
	if err != nil || len(posts) == 0 {
		log.WarnContext(ctx, "failed to get post for notification", "postID", postID)
		return
	}
	post := posts[0]

	if post.UserID == senderID {
		return
	}

	notification := &mongo.Notification{
		ReceiverID: post.UserID,
		SenderID:   senderID,
		Type:       mongo.NotifyTypeBookmark,
		TargetID:   postID,
		Content:    "收藏了你的内容",
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to create bookmark notification", "postID", postID, "err", err)
	}
}
