package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ConversationRepo interface {
	CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error
	GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error)
	GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error)
	IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error)
	AddMember(ctx context.Context, member *model.ConversationMember) error
	UpdateReadSeq(ctx context.Context, convID, userID, seq uint64) error

	IncrMaxSeq(ctx context.Context, convID uint64, lastMsg string, senderID uint64) (uint64, error)

	GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error)
	GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// CreateConversation 开启事务创建会话及初始成员
func (s *conversationRepoImpl) CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, m := range members {
			m.ConversationID = conv.ID
			m.JoinedAt = time.Now()
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *conversationRepoImpl) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).First(&conv, convID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (s *conversationRepoImpl) GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).Where("peer_key = ?", peerKey).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (s *conversationRepoImpl) IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember 公共聊天室按需补员，重复加入由唯一索引兜底
func (s *conversationRepoImpl) AddMember(ctx context.Context, member *model.ConversationMember) error {
	member.JoinedAt = time.Now()
	return s.db.WithContext(ctx).Create(member).Error
}

// UpdateReadSeq 更新用户已读进度
func (s *conversationRepoImpl) UpdateReadSeq(ctx context.Context, convID, userID, seq uint64) error {
	return s.db.WithContext(ctx).Model(&model.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Update("read_msg_seq", seq).Error
}

// IncrMaxSeq 核心定序逻辑：利用数据库行锁确保 Seq 绝对递增
func (s *conversationRepoImpl) IncrMaxSeq(ctx context.Context, convID uint64, lastMsg string, senderID uint64) (uint64, error) {
	var maxSeq uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Conversation{}).Where("id = ?", convID).
			Updates(map[string]interface{}{
				"max_msg_seq":      gorm.Expr("max_msg_seq + 1"),
				"last_msg_content": lastMsg,
				"last_sender_id":   senderID,
				"last_message_at":  time.Now(),
			}).Error
		if err != nil {
			return err
		}
		// 读取并返回自增后的最新 Seq
		return tx.Model(&model.Conversation{}).Select("max_msg_seq").Where("id = ?", convID).Scan(&maxSeq).Error
	})
	return maxSeq, err
}

// GetUserConversationMemList 联表查询，利用嵌套 Model 自动装配
func (s *conversationRepoImpl) GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error) {
	var members []*model.ConversationMember
	// 使用 Conversation__ 别名配合 GORM 的嵌套填充特性
	err := s.db.WithContext(ctx).Table("conversation_members m").
		Select("m.*, "+
			"c.id AS `Conversation__id`, c.type AS `Conversation__type`, "+
			"c.peer_key AS `Conversation__peer_key`, "+
			"c.max_msg_seq AS `Conversation__max_msg_seq`, "+
			"c.last_msg_content AS `Conversation__last_msg_content`, "+
			"c.last_sender_id AS `Conversation__last_sender_id`, "+
			"c.last_message_at AS `Conversation__last_message_at`, "+
			"(c.max_msg_seq - m.read_msg_seq) AS unread_count").
		Joins("JOIN conversations c ON m.conversation_id = c.id").
		Where("m.user_id = ?", userID).
		Order("c.last_message_at DESC").
		Find(&members).Error
	return members, err
}

// GetTotalUnreadCount 计算全局未读数
func (s *conversationRepoImpl) GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Table("conversation_members m").
		Joins("JOIN conversations c ON m.conversation_id = c.id").
		Where("m.user_id = ?", userID).
		Select("COALESCE(SUM(CASE WHEN c.max_msg_seq > m.read_msg_seq THEN c.max_msg_seq - m.read_msg_seq ELSE 0 END), 0)").
		Scan(&total).Error
	return total, err
}
