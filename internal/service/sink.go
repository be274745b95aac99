package service

import (
	"ChatCV/internal/model"
	"context"
	"errors"
)

// ExchangeSink 问答记录的落地目标
type ExchangeSink interface {
	Record(ctx context.Context, record *model.ExchangeRecord) error
}

type multiSink []ExchangeSink

// NewMultiSink 依次写入所有 sink，错误合并返回
func NewMultiSink(sinks ...ExchangeSink) ExchangeSink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (m multiSink) Record(ctx context.Context, record *model.ExchangeRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
