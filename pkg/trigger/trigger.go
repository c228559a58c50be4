package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

// Runner executes side effects (emails, webhooks) off the request path.
// Each job gets its own timeout and failures are only logged.
type Runner struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRunner creates a Runner whose jobs are bounded by timeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Runner{timeout: timeout}
}

// CallAsync runs fn in a goroutine. The request context is not reused so the
// job survives the response being written.
func (r *Runner) CallAsync(operation string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Async job panicked",
					zap.String("operation", operation),
					zap.Any("panic", rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			logger.Error("Async job failed",
				zap.String("operation", operation),
				zap.Error(err))
			return
		}

		logger.Debug("Async job completed", zap.String("operation", operation))
	}()
}

// Wait blocks until in-flight jobs finish or ctx expires. Used on shutdown.
func (r *Runner) Wait(ctx context.Context) error {
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
