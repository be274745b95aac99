package mongo

import (
	"ChatCV/internal/api/config"
	"ChatCV/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	appName          = "chatcv"
	connectTimeout   = 10 * time.Second
	selectionTimeout = 5 * time.Second
)

// InitMongo 建立连接并返回 Database 引用，Ping 失败时断开连接
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetAppName(appName).
		SetServerSelectionTimeout(selectionTimeout).
		SetMonitor(logger.NewMongoMonitor())

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	log.Info("MongoDB initialized successfully",
		"db", cfg.Database,
		"exchanges", cfg.ExchangeCollection,
		"counter", cfg.CounterCollection,
	)
	return client.Database(cfg.Database), nil
}
