package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/justsurfingit/hirely/internal/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives (or ctx ends), then gives every
// stoppable up to timeout to drain, in order.
func Graceful(ctx context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	drainCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, s := range stoppables {
		if err := s.Shutdown(drainCtx); err != nil {
			log.Warn("graceful shutdown completed with error", "err", err)
		}
	}
	log.Info("graceful shutdown finished")
}

// Func adapts a plain close function to Stoppable.
type Func func(ctx context.Context) error

func (f Func) Shutdown(ctx context.Context) error {
	return f(ctx)
}
