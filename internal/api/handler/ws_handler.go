package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/optimistic"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	imService service.IMService
}

func NewWsHandler(im service.IMService) *WsHandler {
	return &WsHandler{imService: im}
}

func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// 获取用户参与的所有会话，订阅 Redis 频道
	list, err := s.imService.GetConversationList(context.Background(), userID)
	if err != nil {
		log.Error("获取会话列表失败", "userID", userID, "err", err)
		return
	}

	var channels []string
	for _, conv := range list {
		channels = append(channels, consts.ChatChannelKey+strconv.FormatUint(conv.ConversationID, 10))
	}
	if len(channels) == 0 {
		// 尚无会话也保持连接，至少监听公共聊天室
		channels = append(channels, consts.ChatChannelKey+strconv.FormatUint(consts.GlobalConversationID, 10))
	}

	// 订阅 Redis 总线
	pubsub := redis.Subscribe(context.Background(), channels...)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "userID", userID, "channels", len(channels))

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端。
	// 多频道订阅下同一条消息可能重复到达，按行 ID 与幂等键去重后再推送
	listener := optimistic.NewListener()
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			if !mergeIncoming(listener, msg.Payload) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			if err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}

// mergeIncoming 把频道推来的消息并入连接级有序视图，重复消息不下发。
// 解不出消息体的负载原样放行，避免误伤非聊天类推送
func mergeIncoming(listener *optimistic.Listener, payload string) bool {
	var msg dto.MessageDTO
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg.ID == "" {
		return true
	}
	return listener.Merge(optimistic.Event{
		ID:        msg.ID,
		ClientKey: msg.ClientMsgID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		Seq:       msg.Seq,
		CreatedAt: msg.CreatedAt,
	})
}
