package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound 存储桶中没有该对象
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo 下载对象的元信息
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// GetFile 打开 MinIO 中的对象，调用方负责关闭
func GetFile(ctx context.Context, objectName string) (io.ReadCloser, *ObjectInfo, error) {
	if Client == nil {
		return nil, nil, fmt.Errorf("minio client is not initialized")
	}

	obj, err := Client.GetObject(ctx, BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectName)
		}
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return obj, &ObjectInfo{Size: stat.Size, ContentType: stat.ContentType}, nil
}
