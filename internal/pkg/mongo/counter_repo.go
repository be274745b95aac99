package mongo

import (
	"ChatCV/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DownloadCounter 简历下载计数器
type DownloadCounter struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Contador    int64              `bson:"contador" json:"contador"`
	FechaUltimo string             `bson:"fecha_ultimo" json:"fechaUltimo"`
}

type CounterRepo interface {
	Increment(ctx context.Context, at time.Time) error
	Get(ctx context.Context) (*DownloadCounter, error)
}

type counterRepoImpl struct {
	col *mongo.Collection
	id  primitive.ObjectID
}

func NewCounterRepo(db *mongo.Database, collection string, id primitive.ObjectID) CounterRepo {
	return &counterRepoImpl{
		col: db.Collection(collection),
		id:  id,
	}
}

// Increment 原子 $inc，并发下载不会丢失计数
func (s *counterRepoImpl) Increment(ctx context.Context, at time.Time) error {
	filter := bson.M{"_id": s.id}
	update := bson.M{
		"$inc": bson.M{"contador": 1},
		"$set": bson.M{"fecha_ultimo": at.Format(consts.TimestampLayout)},
	}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return classify("increment counter", err)
}

func (s *counterRepoImpl) Get(ctx context.Context) (*DownloadCounter, error) {
	var counter DownloadCounter
	err := s.col.FindOne(ctx, bson.M{"_id": s.id}).Decode(&counter)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &DownloadCounter{ID: s.id}, nil
	}
	if err != nil {
		return nil, classify("get counter", err)
	}
	return &counter, nil
}
