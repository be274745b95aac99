package service

import (
	"context"
	log "log/slog"
	"time"
)

// DownloadCounter 下载计数，由存储层保证原子性
type DownloadCounter interface {
	Increment(ctx context.Context, at time.Time) error
}

type DownloadService interface {
	// RecordDownload 计数 +1 并记录最近下载时间
	RecordDownload(ctx context.Context) error
	OpenCV(ctx context.Context) (*CVDocument, error)
}

type downloadServiceImpl struct {
	counter DownloadCounter
	source  CVSource
	loc     *time.Location
	now     func() time.Time
}

func NewDownloadService(counter DownloadCounter, source CVSource, loc *time.Location) DownloadService {
	if loc == nil {
		loc = time.Local
	}
	return &downloadServiceImpl{
		counter: counter,
		source:  source,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *downloadServiceImpl) RecordDownload(ctx context.Context) error {
	if err := s.counter.Increment(ctx, s.now().In(s.loc)); err != nil {
		log.ErrorContext(ctx, "failed to increment download counter", "err", err)
		return err
	}
	return nil
}

func (s *downloadServiceImpl) OpenCV(ctx context.Context) (*CVDocument, error) {
	return s.source.Open(ctx)
}
