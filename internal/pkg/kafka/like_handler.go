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

type LikesHandler struct {
	postRepo   repository.PostRepo
	notifyRepo mongo.NotificationRepo
}

func NewLikesHandler(postRepo repository.PostRepo, notifyRepo mongo.NotificationRepo) *LikesHandler {
	return &LikesHandler{
		postRepo:   postRepo,
		notifyRepo: notifyRepo,
	}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
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

// handleInsert 新增点赞：调整计数缓存并通知作者
func (s *LikesHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	userID, postID := RowUint64(row, "user_id"), RowUint64(row, "post_id")

	bumpCount(ctx, consts.PostLikeKey, postID, 1)
	if err := s.postRepo.IncrCounter(ctx, postID, "likes_count", 1); err != nil {
		log.ErrorContext(ctx, "incr likes_count failed", "postID", postID, "err", err)
	}
	s.sendLikeNotification(ctx, userID, postID)

	log.InfoContext(ctx, "like inserted", "userID", userID, "postID", postID)
	return nil
}

// handleDelete 取消点赞：计数缓存减一
func (s *LikesHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	postID := RowUint64(msg.Data[0], "post_id")
	bumpCount(ctx, consts.PostLikeKey, postID, -1)
	if err := s.postRepo.IncrCounter(ctx, postID, "likes_count", -1); err != nil {
		log.ErrorContext(ctx, "decr likes_count failed", "postID", postID, "err", err)
	}

	log.InfoContext(ctx, "unlike processed", "postID", postID)
	return nil
}

func (s *LikesHandler) sendLikeNotification(ctx context.Context, senderID, postID uint64) {
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
		Type:       mongo.NotifyTypeLike,
		TargetID:   postID,
		Content:    "赞了你的内容",
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to create like notification", "postID", postID, "err", err)
	}
}
