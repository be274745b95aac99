package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRejected    = errors.New("storage rejected document")
)

// classify 区分连接类错误与写入被拒
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var serverSelection topology.ServerSelectionError
	switch {
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.As(err, &serverSelection),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
	}

	// 写入异常、命令异常及其他错误都视为被拒
	return fmt.Errorf("%s: %w: %v", op, ErrStorageRejected, err)
}
