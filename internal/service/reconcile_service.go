package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/metrics"
	"github.com/gamecode-next/internal/repository"

	"go.uber.org/multierr"
)

// 对账结果动作
const (
	ReconcileActionFulfilled = "fulfilled"
	ReconcileActionSkipped   = "skipped"
	ReconcileActionError     = "error"
)

// ReconcileOutcome 单个订单的对账结果
type ReconcileOutcome struct {
	OrderID      uint   `json:"order_id"`
	Action       string `json:"action"`
	Status       string `json:"status,omitempty"`
	AllSucceeded bool   `json:"all_succeeded"`
	Message      string `json:"message,omitempty"`
}

// ReconcileService 批量对账：重新交付未完成的已支付订单
type ReconcileService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	fulfiller   Fulfiller
	batchSize   int
	metrics     *metrics.Pipeline
}

// NewReconcileService 创建对账服务
func NewReconcileService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, fulfiller Fulfiller, batchSize int, pipeline *metrics.Pipeline) *ReconcileService {
	return &ReconcileService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		fulfiller:   fulfiller,
		batchSize:   batchSize,
		metrics:     pipeline,
	}
}

// ReconcileAll 扫描 pending / partially_fulfilled / failed_fulfillment 订单，仅对已支付订单重新交付。
// 按 ID 游标分批读取直到没有剩余，未支付或缺货的订单不会挡住后面的订单。
func (s *ReconcileService) ReconcileAll(ctx context.Context) ([]ReconcileOutcome, error) {
	outcomes := make([]ReconcileOutcome, 0)
	var errs []error
	var lastID uint
	batches := 0
	for {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ids, err := s.orderRepo.ListIDsByStatuses(reconcilableOrderStatuses, lastID, s.batchSize)
		if err != nil {
			logger.Errorw("reconcile_list_failed", "after_id", lastID, "error", err)
			if batches == 0 {
				s.metrics.ObserveReconcileRun(true)
				return nil, fmt.Errorf("%w: %v", ErrReconcileListFailed, err)
			}
			errs = append(errs, fmt.Errorf("%w: %v", ErrReconcileListFailed, err))
			break
		}
		if len(ids) == 0 {
			break
		}
		batches++
		cancelled := false
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				cancelled = true
				break
			}
			outcome, err := s.reconcileOne(ctx, id)
			if err != nil {
				errs = append(errs, fmt.Errorf("order %d: %w", id, err))
			}
			s.metrics.ObserveReconcileOrder(outcome.Action)
			outcomes = append(outcomes, outcome)
		}
		if cancelled || s.batchSize <= 0 || len(ids) < s.batchSize {
			break
		}
		lastID = ids[len(ids)-1]
	}

	combined := multierr.Combine(errs...)
	s.metrics.ObserveReconcileRun(combined != nil)
	logger.Infow("reconcile_run_done",
		"batches", batches,
		"visited", len(outcomes),
		"errors", len(errs),
	)
	return outcomes, combined
}

func (s *ReconcileService) reconcileOne(ctx context.Context, orderID uint) (ReconcileOutcome, error) {
	outcome := ReconcileOutcome{OrderID: orderID}
	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		logger.Warnw("reconcile_payment_fetch_failed", "order_id", orderID, "error", err)
		outcome.Action = ReconcileActionError
		outcome.Message = ErrOrderFetchFailed.Error()
		return outcome, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if payment == nil || payment.Status != constants.PaymentStatusCompleted {
		outcome.Action = ReconcileActionSkipped
		outcome.Message = ErrPaymentNotCompleted.Error()
		return outcome, nil
	}

	result, err := s.fulfiller.Fulfill(ctx, orderID)
	if err != nil {
		outcome.Message = publicMessage(err)
		if errors.Is(err, ErrFulfillmentInProgress) {
			outcome.Action = ReconcileActionSkipped
			return outcome, nil
		}
		outcome.Action = ReconcileActionError
		logger.Warnw("reconcile_order_failed", "order_id", orderID, "error", err)
		return outcome, err
	}
	outcome.Action = ReconcileActionFulfilled
	outcome.Status = result.Status
	outcome.AllSucceeded = result.AllSucceeded
	outcome.Message = result.Message
	return outcome, nil
}
