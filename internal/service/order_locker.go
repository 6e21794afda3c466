package service

import (
	"context"
	"sync"
	"time"

	"github.com/gamecode-next/internal/cache"
	"github.com/gamecode-next/internal/logger"

	"github.com/google/uuid"
)

const defaultOrderLockTTL = 30 * time.Second

// OrderLocker 订单级互斥：进程内互斥 + Redis 分布式锁（启用时）
type OrderLocker struct {
	mu   sync.Mutex
	held map[uint]struct{}
	ttl  time.Duration
}

// NewOrderLocker 创建订单锁
func NewOrderLocker(ttl time.Duration) *OrderLocker {
	if ttl <= 0 {
		ttl = defaultOrderLockTTL
	}
	return &OrderLocker{held: make(map[uint]struct{}), ttl: ttl}
}

// TryLock 非阻塞获取订单锁，已被占用返回 ErrFulfillmentInProgress
func (l *OrderLocker) TryLock(ctx context.Context, orderID uint) (func(), error) {
	l.mu.Lock()
	if _, busy := l.held[orderID]; busy {
		l.mu.Unlock()
		return nil, ErrFulfillmentInProgress
	}
	l.held[orderID] = struct{}{}
	l.mu.Unlock()

	releaseLocal := func() {
		l.mu.Lock()
		delete(l.held, orderID)
		l.mu.Unlock()
	}

	key := cache.OrderLockKey(orderID)
	token := uuid.NewString()
	ok, err := cache.TryLock(ctx, key, token, l.ttl)
	if err != nil {
		// Redis 不可用时退化为进程内锁，行锁仍保证单写
		logger.Warnw("order_lock_redis_failed", "order_id", orderID, "error", err)
		return releaseLocal, nil
	}
	if !ok {
		releaseLocal()
		return nil, ErrFulfillmentInProgress
	}
	return func() {
		if err := cache.Unlock(context.Background(), key, token); err != nil {
			logger.Warnw("order_lock_release_failed", "order_id", orderID, "error", err)
		}
		releaseLocal()
	}, nil
}
