package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

type CommentsHandler struct {
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	notifyRepo mongo.NotificationRepo
}

func NewCommentsHandler(postRepo repository.PostRepo, actionRepo repository.PostActionRepo, notifyRepo mongo.NotificationRepo) *CommentsHandler {
	return &CommentsHandler{
		postRepo:   postRepo,
		actionRepo: actionRepo,
		notifyRepo: notifyRepo,
	}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 新评论：计数加一并通知帖子作者与被回复人
func (s *CommentsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	userID := RowUint64(row, "user_id")
	postID := RowUint64(row, "post_id")
	parentID := RowUint64(row, "parent_id")
	content := RowString(row, "content")

	bumpCount(ctx, consts.PostCommentKey, postID, 1)
	if err := s.postRepo.IncrCounter(ctx, postID, "comments_count", 1); err != nil {
		log.ErrorContext(ctx, "incr comments_count failed", "postID", postID, "err", err)
	}

	posts, err := s.postRepo.GetPostByIds(ctx, []uint64{postID})
	if err != nil || len(posts) == 0 {
		log.WarnContext(ctx, "failed to get post for comment notification", "postID", postID)
		return nil
	}
	post := posts[0]

	if post.UserID != userID {
		s.pushNotification(ctx, userID, post.UserID, postID, content)
	}

	if parentID > 0 {
		parent, err := s.actionRepo.GetCommentByID(ctx, parentID)
		if err == nil && parent != nil && parent.UserID != userID && parent.UserID != post.UserID {
			s.pushNotification(ctx, userID, parent.UserID, postID, content)
		}
	}

	log.InfoContext(ctx, "comment inserted", "userID", userID, "postID", postID)
	return nil
}

// handleUpdate 软删除：is_deleted 翻转为真时计数减一
func (s *CommentsHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	for i, row := range msg.Data {
		if !RowBool(row, "is_deleted") {
			continue
		}
		if i < len(msg.Old) {
			if _, changed := msg.Old[i]["is_deleted"]; !changed {
				continue
			}
		}
		postID := RowUint64(row, "post_id")
		bumpCount(ctx, consts.PostCommentKey, postID, -1)
		if err := s.postRepo.IncrCounter(ctx, postID, "comments_count", -1); err != nil {
			log.ErrorContext(ctx, "decr comments_count failed", "postID", postID, "err", err)
		}
		log.InfoContext(ctx, "comment soft deleted", "postID", postID)
	}
	return nil
}

func (s *CommentsHandler) pushNotification(ctx context.Context, senderID, receiverID, postID uint64, content string) {
	notification := &mongo.Notification{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       mongo.NotifyTypeComment,
		TargetID:   postID,
		Content:    util.Summarize(content, 60),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to create comment notification", "postID", postID, "err", err)
	}
}
