package kafka

import (
	"Inkstone/internal/pkg/es"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PostsHandler 把帖子表的行变更同步进 Elasticsearch 索引
type PostsHandler struct {
	esRepo es.PostRepo
}

func NewPostsHandler(esRepo es.PostRepo) *PostsHandler {
	return &PostsHandler{esRepo: esRepo}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, UPDATE:
		return s.syncIndex(ctx, canalMsg)
	case DELETE:
		return s.removeIndex(ctx, canalMsg)
	default:
		return nil
	}
}

// syncIndex 软删除或转私密的帖子从索引剔除，其余以事件时间为版本写入
func (s *PostsHandler) syncIndex(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		postID := RowUint64(row, "id")
		if postID == 0 {
			continue
		}

		if RowBool(row, "is_deleted") || !RowBool(row, "is_public") {
			if err := s.esRepo.DeletePost(ctx, postID); err != nil {
				return err
			}
			log.InfoContext(ctx, "post removed from index", "postID", postID)
			continue
		}

		doc := &es.PostES{
			ID:         postID,
			UserID:     RowUint64(row, "user_id"),
			Type:       RowString(row, "type"),
			Title:      RowString(row, "title"),
			Content:    RowString(row, "content"),
			Tags:       parseTags(RowString(row, "tags")),
			IsPublic:   true,
			LikesCount: int(RowUint64(row, "likes_count")),
			ViewsCount: int(RowUint64(row, "views_count")),
			CreatedAt:  parseRowTime(RowString(row, "created_at")),
			UpdatedAt:  parseRowTime(RowString(row, "updated_at")),
		}
		if err := s.esRepo.IndexPost(ctx, doc, msg.ES); err != nil {
			return err
		}
		log.InfoContext(ctx, "post indexed", "postID", postID)
	}
	return nil
}

func (s *PostsHandler) removeIndex(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		postID := RowUint64(row, "id")
		if postID == 0 {
			continue
		}
		if err := s.esRepo.DeletePost(ctx, postID); err != nil {
			return err
		}
		log.InfoContext(ctx, "post removed from index", "postID", postID)
	}
	return nil
}

func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

func parseRowTime(raw string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", raw, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
