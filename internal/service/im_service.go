package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IMService 即时通讯服务接口定义
type IMService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error)
	JoinGlobalConversation(ctx context.Context, userID uint64) (uint64, error)
	GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	SyncMessages(ctx context.Context, userID uint64, convID uint64, afterSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	GetTotalUnread(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error
	Close()
}

type imServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
	retryChan   chan *mongo.Message
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

// NewIMService 构造函数：初始化服务并启动异步校准工作池
func NewIMService(convRepo repository.ConversationRepo, messageRepo mongo.MessageRepo) IMService {
	s := &imServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		retryChan:   make(chan *mongo.Message, 2048),
		stopChan:    make(chan struct{}),
	}

	workerCount := 5
	s.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go s.calibrationWorker()
	}

	return s
}

// SendMessage 发送消息，ClientMsgID 相同的重发直接返回已落库的那条
func (s *imServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	convID := req.ConversationID

	if convID == 0 {
		if req.TargetUserID == 0 {
			return nil, ErrTargetUserInvalid
		}
		id, err := s.GetOrCreateConversation(ctx, senderID, req.TargetUserID)
		if err != nil {
			return nil, err
		}
		convID = id
	} else if convID == consts.GlobalConversationID {
		if _, err := s.JoinGlobalConversation(ctx, senderID); err != nil {
			return nil, err
		}
	} else {
		isMember, err := s.convRepo.IsMember(ctx, convID, senderID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, UnauthorizedError
		}
	}

	// 幂等检查：同一会话内相同幂等键的消息只落一次
	if existing, err := s.messageRepo.GetByClientMsgID(ctx, convID, req.ClientMsgID); err == nil && existing != nil {
		return s.toMessageDTO(existing), nil
	}

	// MySQL 原子定序
	newSeq, err := s.convRepo.IncrMaxSeq(ctx, convID, util.Summarize(req.Content, 80), senderID)
	if err != nil {
		return nil, err
	}

	msgModel := &mongo.Message{
		ID:             primitive.NewObjectID().Hex(),
		ConversationID: convID,
		SenderID:       senderID,
		Content:        req.Content,
		ClientMsgID:    req.ClientMsgID,
		Seq:            newSeq,
		CreatedAt:      time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.messageRepo.SaveMessage(writeCtx, msgModel); err != nil {
		select {
		case s.retryChan <- msgModel:
		default:
		}
	}

	// 推送到会话频道，WebSocket 网关据此分发给在线成员
	_ = s.publishMessage(context.Background(), msgModel)

	return s.toMessageDTO(msgModel), nil
}

// GetOrCreateConversation 针对单聊：获取或创建会话
func (s *imServiceImpl) GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error) {
	if userID == targetUserID {
		return 0, ErrTargetUserInvalid
	}
	peerKey := util.PeerKey(userID, targetUserID)

	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err != nil {
		return 0, err
	}
	if conv != nil {
		return conv.ID, nil
	}

	newConv := &model.Conversation{
		Type:          model.ConversationTypeDirect,
		PeerKey:       peerKey,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: userID},
		{UserID: targetUserID},
	}
	if err := s.convRepo.CreateConversation(ctx, newConv, members); err != nil {
		return 0, err
	}
	return newConv.ID, nil
}

// JoinGlobalConversation 公共聊天室按需补员，重复加入按幂等处理
func (s *imServiceImpl) JoinGlobalConversation(ctx context.Context, userID uint64) (uint64, error) {
	convID := consts.GlobalConversationID
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil {
		return 0, err
	}
	if isMember {
		return convID, nil
	}
	err = s.convRepo.AddMember(ctx, &model.ConversationMember{
		ConversationID: convID,
		UserID:         userID,
	})
	if err != nil && !isDuplicateError(err) {
		return 0, err
	}
	return convID, nil
}

// GetChatHistory 拉取历史，包含空洞自愈
func (s *imServiceImpl) GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, err
	}

	if lastSeq == 0 {
		conv, err := s.convRepo.GetConversation(ctx, convID)
		if err == nil && conv != nil {
			hasGap := (len(models) == 0 && conv.MaxMsgSeq > 0) || (len(models) > 0 && models[0].Seq < conv.MaxMsgSeq)
			if hasGap {
				// MongoDB 写入落后时用 MySQL 的预览补一个占位
				stub := &dto.MessageDTO{
					ConversationID: conv.ID,
					Content:        conv.LastMsgContent,
					SenderID:       conv.LastSenderID,
					Seq:            conv.MaxMsgSeq,
					CreatedAt:      conv.LastMessageAt,
				}
				res := []*dto.MessageDTO{stub}
				for _, m := range models {
					res = append(res, s.toMessageDTO(m))
				}
				return res, nil
			}
		}
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// SyncMessages 增量同步，按序号升序返回 afterSeq 之后的消息
func (s *imServiceImpl) SyncMessages(ctx context.Context, userID uint64, convID uint64, afterSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.GetSince(ctx, convID, afterSeq, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// GetConversationList 获取会话列表
func (s *imServiceImpl) GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	members, err := s.convRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationDTO, 0, len(members))
	for _, m := range members {
		d := &dto.ConversationDTO{
			ConversationID: m.ConversationID,
			Type:           m.Conversation.Type,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
		}
		if m.Conversation.Type == model.ConversationTypeDirect {
			d.PeerID, _ = s.parsePeerID(m.Conversation.PeerKey, userID)
		}
		res = append(res, d)
	}
	return res, nil
}

// MarkAsRead 标记已读，进度不会超过会话当前最大序号
// GetTotalUnread 汇总用户全部会话的未读数
func (s *imServiceImpl) GetTotalUnread(ctx context.Context, userID uint64) (int64, error) {
	return s.convRepo.GetTotalUnreadCount(ctx, userID)
}

func (s *imServiceImpl) MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return UnauthorizedError
	}

	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversation
	}

	targetSeq := seq
	if targetSeq > conv.MaxMsgSeq {
		targetSeq = conv.MaxMsgSeq
	}
	return s.convRepo.UpdateReadSeq(ctx, convID, userID, targetSeq)
}

// publishMessage 发布消息到会话频道
func (s *imServiceImpl) publishMessage(ctx context.Context, msg *mongo.Message) error {
	data, err := json.Marshal(s.toMessageDTO(msg))
	if err != nil {
		return err
	}
	channel := consts.ChatChannelKey + strconv.FormatUint(msg.ConversationID, 10)
	return redis.Publish(ctx, channel, data)
}

func (s *imServiceImpl) Close() {
	close(s.stopChan)
	s.wg.Wait()
	log.Info("IMService shut down gracefully")
}

// calibrationWorker 持续重试 MongoDB 写入失败的消息
func (s *imServiceImpl) calibrationWorker() {
	defer s.wg.Done()
	for {
		select {
		case msg := <-s.retryChan:
			backoff := time.Second
			for i := 0; i < 3; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := s.messageRepo.SaveMessage(ctx, msg)
				cancel()
				if err == nil {
					break
				}
				time.Sleep(backoff)
				backoff *= 2
			}
		case <-s.stopChan:
			return
		}
	}
}

func (s *imServiceImpl) parsePeerID(peerKey string, currentUserID uint64) (uint64, error) {
	var u1, u2 uint64
	_, err := fmt.Sscanf(peerKey, "%d_%d", &u1, &u2)
	if err != nil {
		return 0, err
	}
	if u1 == currentUserID {
		return u2, nil
	}
	return u1, nil
}

func (s *imServiceImpl) toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		ClientMsgID:    m.ClientMsgID,
		Seq:            m.Seq,
		CreatedAt:      m.CreatedAt,
	}
}
