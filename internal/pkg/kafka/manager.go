package kafka

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	likeConsumer sarama.ConsumerGroup
	likeHandler  sarama.ConsumerGroupHandler

	bookmarkConsumer sarama.ConsumerGroup
	bookmarkHandler  sarama.ConsumerGroupHandler

	commentConsumer sarama.ConsumerGroup
	commentHandler  sarama.ConsumerGroupHandler

	postConsumer sarama.ConsumerGroup
	postHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	postESRepo es.PostRepo,
	postDBRepo repository.PostRepo,
	actionDBRepo repository.PostActionRepo,
	notifyRepo mongo.NotificationRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likeConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	bookmarkConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaBookmarkConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	commentConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	postConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPostConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		likeConsumer:     likeConsumer,
		likeHandler:      NewLikesHandler(postDBRepo, notifyRepo),
		bookmarkConsumer: bookmarkConsumer,
		bookmarkHandler:  NewBookmarksHandler(postDBRepo, notifyRepo),
		commentConsumer:  commentConsumer,
		commentHandler:   NewCommentsHandler(postDBRepo, actionDBRepo, notifyRepo),
		postConsumer:     postConsumer,
		postHandler:      NewPostsHandler(postESRepo),
	}, nil
}

// Start 启动所有消费者并阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	run := func(name, topic string, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) {
		go func() {
			log.Info(name+" consumer started", "topic", topic)
			for {
				if err := group.Consume(ctx, []string{topic}, handler); err != nil {
					log.Error("Error from consumer", "name", name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}

	run("like", cfg.KafkaLikeConsumer.Topic, m.likeConsumer, m.likeHandler)
	run("bookmark", cfg.KafkaBookmarkConsumer.Topic, m.bookmarkConsumer, m.bookmarkHandler)
	run("comment", cfg.KafkaCommentConsumer.Topic, m.commentConsumer, m.commentHandler)
	run("post", cfg.KafkaPostConsumer.Topic, m.postConsumer, m.postHandler)

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	for name, group := range map[string]sarama.ConsumerGroup{
		"like":     m.likeConsumer,
		"bookmark": m.bookmarkConsumer,
		"comment":  m.commentConsumer,
		"post":     m.postConsumer,
	} {
		if err := group.Close(); err != nil {
			log.Error("Failed to close consumer", "name", name, "err", err)
		}
	}

	return nil
}
