package mongo

import (
	"ChatCV/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// ExchangeRepo 问答记录，只插入不更新
type ExchangeRepo interface {
	Record(ctx context.Context, record *model.ExchangeRecord) error
}

type exchangeRepoImpl struct {
	col *mongo.Collection
}

func NewExchangeRepo(db *mongo.Database, collection string) ExchangeRepo {
	return &exchangeRepoImpl{
		col: db.Collection(collection),
	}
}

// Record 每次调用插入一条新文档，不去重
func (s *exchangeRepoImpl) Record(ctx context.Context, record *model.ExchangeRecord) error {
	_, err := s.col.InsertOne(ctx, record)
	return classify("insert exchange", err)
}
