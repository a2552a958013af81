package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cache"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	inkmongo "Inkstone/internal/pkg/mongo"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	IMService    service.IMService
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewPostActionRepo(db)
	convRepo := repository.NewConversationRepo(db)

	messageRepo := inkmongo.NewMessageRepo(mongoDB)
	notifyRepo := inkmongo.NewNotificationRepo(mongoDB)
	postESRepo := es.NewPostRepo(es.Client)

	actionService := service.NewPostActionService(actionRepo, postRepo, userRepo)
	userService := service.NewUserService(userRepo, actionService)
	postService := service.NewPostService(postRepo, actionService, postESRepo)
	imService := service.NewIMService(convRepo, messageRepo)
	notifyService := service.NewNotifyService(notifyRepo)
	feedService := service.NewFeedService(postRepo)

	musicCache := cache.NewTTL(time.Duration(cfg.Music.CacheTTLSec) * time.Second)
	musicService := service.NewMusicService(musicCache)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(actionService),
		IMHandler:         handler.NewIMHandler(imService),
		WSHandler:         handler.NewWsHandler(imService),
		NotifyHandler:     handler.NewNotifyHandler(notifyService),
		MediaHandler:      handler.NewMediaHandler(),
		MusicHandler:      handler.NewMusicHandler(musicService),
		FeedHandler:       handler.NewFeedHandler(feedService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, postESRepo, postRepo, actionRepo, notifyRepo)
	if err != nil {
		return nil, err
	}

	counterFlushJob := job.NewCounterFlushJob(postService, actionService)
	mediaCleanJob := job.NewMediaCleanJob()
	cachePurgeJob := job.NewCachePurgeJob(musicCache)
	cronMgr := cron.NewCronManager(counterFlushJob, mediaCleanJob, cachePurgeJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		IMService:    imService,
	}, nil
}
