package worker

import (
	"context"
	"errors"
	"time"

	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/service"
)

// Reconciler 批量对账执行者
type Reconciler interface {
	ReconcileAll(ctx context.Context) ([]service.ReconcileOutcome, error)
}

// ReconcileLoop 周期性对账服务，不依赖队列
type ReconcileLoop struct {
	name       string
	interval   time.Duration
	reconciler Reconciler
}

// NewReconcileLoop 创建周期对账服务
func NewReconcileLoop(interval time.Duration, reconciler Reconciler) (*ReconcileLoop, error) {
	if interval <= 0 {
		return nil, errors.New("reconcile interval disabled")
	}
	if reconciler == nil {
		return nil, errors.New("reconciler is nil")
	}
	return &ReconcileLoop{
		name:       "reconciler",
		interval:   interval,
		reconciler: reconciler,
	}, nil
}

// Name 服务名称
func (l *ReconcileLoop) Name() string {
	if l == nil || l.name == "" {
		return "reconciler"
	}
	return l.name
}

// Start 立即执行一次，随后按间隔执行，直到 ctx 结束
func (l *ReconcileLoop) Start(ctx context.Context) error {
	if l == nil || l.reconciler == nil {
		return errors.New("reconciler not initialized")
	}
	l.runOnce(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.runOnce(ctx)
		}
	}
}

// Stop 由 Start 的 ctx 控制退出
func (l *ReconcileLoop) Stop(ctx context.Context) error {
	return nil
}

func (l *ReconcileLoop) runOnce(ctx context.Context) {
	outcomes, err := l.reconciler.ReconcileAll(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warnw("worker_reconcile_failed", "orders", len(outcomes), "error", err)
		return
	}
	if len(outcomes) > 0 {
		logger.Debugw("worker_reconcile_done", "orders", len(outcomes))
	}
}
