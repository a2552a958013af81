package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部成功后统一提交位点
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			var retryInterval = 100 * time.Millisecond

			for {
				err := logic(session.Context(), m)
				if err == nil {
					break
				}
				select {
				case <-session.Context().Done():
					return
				default:
				}

				log.Error("process message error", "err", err)
				time.Sleep(retryInterval)

				retryInterval *= 2
				if retryInterval > 5*time.Second {
					retryInterval = 5 * time.Second
				}
			}
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 {
		lastMsg := messages[len(messages)-1]
		session.MarkMessage(lastMsg, "")
	}
}

// ToCanalMessage 将 kafka 消息转换为 canal 消息结构体
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		log.Error("unmarshal canal message error", "err", err)
		return nil, err
	}

	if canalMsg.Table != tableName {
		return nil, errors.New("table name not match")
	}

	if len(canalMsg.Data) == 0 {
		return nil, errors.New("data is empty")
	}

	return &canalMsg, nil
}

// bumpCount 计数缓存存在时按增量调整，并把帖子标记为待回写
// 缓存不存在时留给读路径回源，避免写入过期值
func bumpCount(ctx context.Context, prefix string, postID uint64, delta int64) {
	key := prefix + strconv.FormatUint(postID, 10)
	if _, err := redis.GetInt64(ctx, key); err == nil {
		if _, err := redis.IncrBy(ctx, key, delta); err != nil {
			log.WarnContext(ctx, "计数缓存调整失败", "key", key, "err", err)
		}
	}
	_ = redis.SAdd(ctx, consts.PostDirtyKey, strconv.FormatUint(postID, 10))
}
