package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *Notification) error
	GetList(ctx context.Context, receiverID uint64, limit, offset int64) ([]*Notification, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error)
	GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error)
	MarkAsRead(ctx context.Context, receiverID uint64, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, receiverID uint64) error
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notification"),
	}
}

func (s *notificationRepoImpl) Create(ctx context.Context, n *Notification) error {
	_, err := s.col.InsertOne(ctx, n)
	return err
}

// GetList 按时间倒序分页拉取通知
func (s *notificationRepoImpl) GetList(ctx context.Context, receiverID uint64, limit, offset int64) ([]*Notification, error) {
	filter := bson.M{"receiver_id": receiverID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*Notification
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *notificationRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	var n Notification
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"receiver_id": receiverID,
		"is_read":     false,
	})
}

func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, receiverID uint64, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "receiver_id": receiverID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, receiverID uint64) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"receiver_id": receiverID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}
