package wire

import (
	"ChatCV/internal/api"
	"ChatCV/internal/api/config"
	"ChatCV/internal/api/handler"
	"ChatCV/internal/api/middleware"
	"ChatCV/internal/job"
	"ChatCV/internal/model"
	"ChatCV/internal/pkg/cron"
	"ChatCV/internal/pkg/kafka"
	"ChatCV/internal/pkg/llm"
	mongorepo "ChatCV/internal/pkg/mongo"
	"ChatCV/internal/pkg/redis"
	"ChatCV/internal/pkg/security"
	"ChatCV/internal/pkg/session"
	"ChatCV/internal/pkg/util"
	"ChatCV/internal/service"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	CronMgr  *cron.Manager
	Producer *kafka.ExchangeProducer
}

// BuildApplication 组装会话、对话、下载各层依赖
func BuildApplication(cfg *config.Config, db *mongo.Database, chatModel llm.ChatModel, systemPrompt string) (*ApplicationContainer, error) {
	greeter, err := llm.NewGreeter(cfg.Chat.BotName, cfg.Chat.OwnerName, cfg.Chat.Timezone)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Chat.Timezone)
	if err != nil {
		return nil, err
	}

	defaults := &session.Defaults{
		ModelName: chatModel.ModelName(),
		Seed: func() []model.Message {
			return append([]model.Message{model.SystemMessage(systemPrompt)}, greeter.WelcomeMessages()...)
		},
	}

	idle := time.Duration(cfg.Session.IdleMinutes) * time.Minute
	store, err := newSessionStore(cfg, idle, defaults)
	if err != nil {
		return nil, err
	}

	// 问答落库，开启 Kafka 时同时投递
	sinks := []service.ExchangeSink{mongorepo.NewExchangeRepo(db, cfg.Mongo.ExchangeCollection)}
	var producer *kafka.ExchangeProducer
	if cfg.Kafka.Enable {
		producer, err = kafka.NewExchangeProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, producer)
	}

	counterID, err := primitive.ObjectIDFromHex(cfg.Mongo.CounterID)
	if err != nil {
		return nil, fmt.Errorf("invalid counter id %q: %w", cfg.Mongo.CounterID, err)
	}
	counterRepo := mongorepo.NewCounterRepo(db, cfg.Mongo.CounterCollection, counterID)

	chatService := service.NewChatService(chatModel, llm.NewPricingTable(cfg.LLM.Pricing), service.NewMultiSink(sinks...), store, service.ChatOptions{
		MaxQueries: cfg.Chat.MaxQueries,
		Location:   loc,
	})
	downloadService := service.NewDownloadService(counterRepo, newCVSource(cfg.CV), loc)

	handlers := &api.HandlersGroup{
		ChatHandler: handler.NewChatHandler(
			chatService,
			time.Duration(cfg.Chat.RevealDelay)*time.Millisecond,
			util.RevealMode(cfg.Chat.RevealMode),
		),
		DownloadHandler: handler.NewDownloadHandler(downloadService),
	}

	issuer := security.NewTokenIssuer(cfg.Session.Secret, idle)
	sessionMiddleware := middleware.SessionMiddleware(issuer, store, cfg.Session.CookieName, idle)
	router := api.SetupRouter(handlers, cfg.Server.AllowedOrigins, sessionMiddleware)

	cronMgr := cron.NewCronManager(cfg.Session.SweepSpec, job.NewSessionSweepJob(store, idle))

	return &ApplicationContainer{
		Router:   router,
		CronMgr:  cronMgr,
		Producer: producer,
	}, nil
}

func newSessionStore(cfg *config.Config, idle time.Duration, defaults *session.Defaults) (session.Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(defaults), nil
	case "redis":
		rdb := redis.GetRdbClient()
		if rdb == nil {
			return nil, fmt.Errorf("session backend redis: client not initialized")
		}
		return session.NewRedisStore(rdb, cfg.Redis.KeyPrefix, idle, defaults), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func newCVSource(cfg config.CVConfig) service.CVSource {
	if cfg.Backend == "minio" {
		return service.NewMinioCVSource(cfg.Object, cfg.FileName)
	}
	return service.NewFileCVSource(cfg.Path, cfg.FileName)
}
