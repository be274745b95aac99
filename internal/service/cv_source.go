package service

import (
	"ChatCV/internal/pkg/consts"
	"ChatCV/internal/pkg/minio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
)

// CVDocument 待下载的简历文件，Reader 由调用方关闭
type CVDocument struct {
	Reader      io.ReadCloser
	Size        int64
	ContentType string
	FileName    string
}

// CVSource 简历文件来源
type CVSource interface {
	Open(ctx context.Context) (*CVDocument, error)
}

type fileCVSource struct {
	path     string
	fileName string
}

// NewFileCVSource 从本地磁盘读取简历
func NewFileCVSource(path, fileName string) CVSource {
	return &fileCVSource{path: path, fileName: fileName}
}

func (s *fileCVSource) Open(context.Context) (*CVDocument, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotExist
		}
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &CVDocument{
		Reader:      f,
		Size:        stat.Size(),
		ContentType: consts.MimePDF,
		FileName:    s.fileName,
	}, nil
}

type minioCVSource struct {
	object   string
	fileName string
}

// NewMinioCVSource 从 MinIO 存储桶读取简历
func NewMinioCVSource(object, fileName string) CVSource {
	return &minioCVSource{object: object, fileName: fileName}
}

func (s *minioCVSource) Open(ctx context.Context) (*CVDocument, error) {
	reader, info, err := minio.GetFile(ctx, s.object)
	if err != nil {
		if errors.Is(err, minio.ErrObjectNotFound) {
			return nil, ErrFileNotExist
		}
		return nil, err
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = consts.MimePDF
	}
	return &CVDocument{
		Reader:      reader,
		Size:        info.Size,
		ContentType: contentType,
		FileName:    s.fileName,
	}, nil
}
