package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	SaveMessage(ctx context.Context, msg *Message) error
	GetHistory(ctx context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*Message, error)
	GetSince(ctx context.Context, convID uint64, afterSeq uint64, pageSize int) ([]*Message, error)
	GetByClientMsgID(ctx context.Context, convID uint64, clientMsgID string) (*Message, error)
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("message"),
	}
}

// SaveMessage 将消息存入 MongoDB
func (s *messageRepoImpl) SaveMessage(ctx context.Context, msg *Message) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetHistory 历史消息查询
// lastSeq 为当前页面最旧一条消息的序号，第一页传 0
func (s *messageRepoImpl) GetHistory(ctx context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*Message, error) {
	filter := bson.M{"conversation_id": convID}
	if lastSeq > 0 {
		filter["seq"] = bson.M{"$lt": lastSeq}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "seq", Value: -1}}).
		SetLimit(int64(pageSize))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// GetSince 增量同步：拉取序号大于 afterSeq 的消息，升序返回
func (s *messageRepoImpl) GetSince(ctx context.Context, convID uint64, afterSeq uint64, pageSize int) ([]*Message, error) {
	filter := bson.M{
		"conversation_id": convID,
		"seq":             bson.M{"$gt": afterSeq},
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}}).
		SetLimit(int64(pageSize))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// GetByClientMsgID 按幂等键精确查询，未命中返回 (nil, nil)
func (s *messageRepoImpl) GetByClientMsgID(ctx context.Context, convID uint64, clientMsgID string) (*Message, error) {
	var msg Message
	filter := bson.M{
		"conversation_id": convID,
		"client_msg_id":   clientMsgID,
	}
	err := s.col.FindOne(ctx, filter).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
