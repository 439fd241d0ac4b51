// Package recorder 在后台写入点击记录, 不阻塞跳转响应。
package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"click-tracker/internal/model"

	"go.uber.org/zap"
)

// Store 点击记录的持久化接口
type Store interface {
	Insert(ctx context.Context, rec *model.ClickRecord) error
}

// Recorder 负责尽力而为的单次写入, 失败只记日志, 不重试
type Recorder struct {
	store   Store
	logger  *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

// New 创建 Recorder, timeout 为 0 时只受存储客户端自身超时限制
func New(store Store, logger *zap.SugaredLogger, timeout time.Duration) *Recorder {
	return &Recorder{
		store:   store,
		logger:  logger.Named("recorder"),
		timeout: timeout,
	}
}

// Record 同步写入一次
func (r *Recorder) Record(ctx context.Context, rec *model.ClickRecord) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("写入点击记录时 panic: %v", p)
		}
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.store.Insert(ctx, rec)
}

// RecordAsync 在独立的 goroutine 中写入, 使用新的后台 context, 与请求生命周期无关。
// 进程退出时未完成的写入可能丢失, 可通过 Wait 等待。
func (r *Recorder) RecordAsync(rec *model.ClickRecord) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		start := time.Now()
		if err := r.Record(context.Background(), rec); err != nil {
			r.logger.Errorw("点击记录写入失败, 已忽略",
				"click_id", rec.ClickID,
				"client", rec.Client,
				"error", err,
			)
			return
		}
		r.logger.Debugw("点击记录已写入",
			"click_id", rec.ClickID,
			"client", rec.Client,
			"service", rec.Service,
			"elapsed", time.Since(start),
		)
	}()
}

// Wait 等待所有进行中的写入完成, 或 ctx 结束
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
