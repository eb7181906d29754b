package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/service"
)

const defaultPublishTimeout = time.Second

// ChangeFeedWorker delivers queued change events off the request path.
type ChangeFeedWorker struct {
	feed    *service.ChangeFeedService
	timeout time.Duration
	logger  *zap.Logger
}

// NewChangeFeedWorker builds a worker; each delivery is bounded by timeout.
func NewChangeFeedWorker(feed *service.ChangeFeedService, timeout time.Duration, logger *zap.Logger) *ChangeFeedWorker {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &ChangeFeedWorker{feed: feed, timeout: timeout, logger: logger}
}

// StartChangeFeedWorker registers change feed handlers and runs delivery until ctx is cancelled.
// The returned channel is closed once the delivery loop has exited.
func StartChangeFeedWorker(ctx context.Context, w *ChangeFeedWorker) <-chan struct{} {
	done := make(chan struct{})
	if w == nil || w.feed == nil {
		close(done)
		return done
	}
	w.feed.RegisterHandlers()
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}

// Run drains the feed one message at a time.
func (w *ChangeFeedWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("change feed worker stopped", zap.Int("pending", len(w.feed.Messages())))
			return
		case msg := <-w.feed.Messages():
			w.deliver(ctx, msg)
		}
	}
}

func (w *ChangeFeedWorker) deliver(ctx context.Context, msg service.ChangeMessage) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	_ = w.feed.Deliver(ctx, msg)
}
