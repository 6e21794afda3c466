package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/metrics"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/queue"
	"github.com/gamecode-next/internal/repository"

	"gorm.io/gorm"
)

var errOrderNotEligible = errors.New("order not eligible for fulfillment")

// ConfirmationDispatcher 交付完成后的确认通知投递
type ConfirmationDispatcher interface {
	DispatchOrderConfirmation(ctx context.Context, orderID uint)
}

// FulfillmentItemResult 单个订单项交付结果
type FulfillmentItemResult struct {
	ItemID uint   `json:"item_id"`
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// FulfillmentResult 交付结果
type FulfillmentResult struct {
	OrderID      uint                    `json:"order_id"`
	AllSucceeded bool                    `json:"all_succeeded"`
	Status       string                  `json:"status"`
	Message      string                  `json:"message"`
	Items        []FulfillmentItemResult `json:"items"`

	newlyFulfilled int
}

// FulfillmentService 交付服务
type FulfillmentService struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	ledger     *InventoryLedger
	codes      *CodeGenerator
	creditor   AccountCreditor
	locker     *OrderLocker
	dispatcher ConfirmationDispatcher
	retryQueue *queue.Client
	retryDelay time.Duration
	metrics    *metrics.Pipeline
	now        func() time.Time
}

// NewFulfillmentService 创建交付服务
func NewFulfillmentService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	ledger *InventoryLedger,
	codes *CodeGenerator,
	creditor AccountCreditor,
	locker *OrderLocker,
	pipeline *metrics.Pipeline,
) *FulfillmentService {
	if codes == nil {
		codes = NewCodeGenerator()
	}
	if creditor == nil {
		creditor = NewSimulatedAccountCreditor()
	}
	if locker == nil {
		locker = NewOrderLocker(0)
	}
	return &FulfillmentService{
		db:        db,
		orderRepo: orderRepo,
		ledger:    ledger,
		codes:     codes,
		creditor:  creditor,
		locker:    locker,
		metrics:   pipeline,
		now:       time.Now,
	}
}

// SetDispatcher 注入确认通知投递（通知服务依赖交付服务之外的组件，延后注入）
func (s *FulfillmentService) SetDispatcher(dispatcher ConfirmationDispatcher) {
	s.dispatcher = dispatcher
}

// SetRetryQueue 中止的交付通过队列延迟重试
func (s *FulfillmentService) SetRetryQueue(client *queue.Client, delay time.Duration) {
	s.retryQueue = client
	s.retryDelay = delay
}

// Fulfill 对订单执行一次交付：逐项扣库存、发码或直充，并推导订单状态
func (s *FulfillmentService) Fulfill(ctx context.Context, orderID uint) (*FulfillmentResult, error) {
	started := s.now()
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !IsFulfillableStatus(order.Status) {
		return notEligibleResult(order), nil
	}

	release, err := s.locker.TryLock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *FulfillmentResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		passResult, passErr := s.runPass(ctx, tx, orderID)
		if passErr != nil {
			return passErr
		}
		result = passResult
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, errOrderNotEligible):
			latest, fetchErr := s.orderRepo.GetByID(orderID)
			if fetchErr != nil || latest == nil {
				return nil, ErrOrderFetchFailed
			}
			return notEligibleResult(latest), nil
		}
		return s.abort(orderID, order.Status, err, started), nil
	}

	s.metrics.ObserveFulfillmentPass(result.Status, s.now().Sub(started))
	logger.Infow("fulfillment_pass_done",
		"order_id", orderID,
		"status", result.Status,
		"all_succeeded", result.AllSucceeded,
		"newly_fulfilled", result.newlyFulfilled,
	)

	if result.newlyFulfilled > 0 && hasFulfilledItem(result.Status) && s.dispatcher != nil {
		s.dispatcher.DispatchOrderConfirmation(ctx, orderID)
	}
	return result, nil
}

// abort 回滚后单独写入 failed_fulfillment
func (s *FulfillmentService) abort(orderID uint, previous string, cause error, started time.Time) *FulfillmentResult {
	logger.Errorw("fulfillment_pass_aborted", "order_id", orderID, "error", cause)
	if CanTransitionOrder(previous, constants.OrderStatusFailedFulfillment) {
		if err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusFailedFulfillment); err != nil {
			logger.Errorw("fulfillment_mark_failed_error", "order_id", orderID, "error", err)
		}
	}
	s.metrics.ObserveFulfillmentPass("aborted", s.now().Sub(started))
	if s.retryQueue.Enabled() {
		payload := queue.OrderFulfillPayload{OrderID: orderID, Source: "retry"}
		if err := s.retryQueue.EnqueueOrderFulfill(payload, s.retryDelay); err != nil {
			logger.Warnw("fulfillment_retry_enqueue_failed", "order_id", orderID, "error", err)
		}
	}
	return &FulfillmentResult{
		OrderID:      orderID,
		AllSucceeded: false,
		Status:       constants.OrderStatusFailedFulfillment,
		Message:      ErrFulfillmentAborted.Error(),
		Items:        []FulfillmentItemResult{},
	}
}

func (s *FulfillmentService) runPass(ctx context.Context, tx *gorm.DB, orderID uint) (*FulfillmentResult, error) {
	orderRepo := s.orderRepo.WithTx(tx)
	order, err := orderRepo.GetByIDForUpdate(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !IsFulfillableStatus(order.Status) {
		return nil, errOrderNotEligible
	}
	// 先写 processing，提前拿到写锁
	if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusProcessing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}

	result := &FulfillmentResult{OrderID: order.ID, Items: make([]FulfillmentItemResult, 0, len(order.Items))}
	for i := range order.Items {
		item := &order.Items[i]
		if !CanTransitionItem(item.Status, constants.OrderItemStatusFulfilled) {
			result.Items = append(result.Items, buildItemResult(item, skippedItemDetail(item.Status)))
			continue
		}
		detail, err := s.fulfillItem(ctx, tx, orderRepo, item)
		if err != nil {
			return nil, err
		}
		if item.Status == constants.OrderItemStatusFulfilled {
			result.newlyFulfilled++
		}
		s.metrics.ObserveFulfillmentItem(item.Status, item.FailReason)
		result.Items = append(result.Items, buildItemResult(item, detail))
	}

	status := DeriveOrderStatus(order.Items)
	if err := orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	result.Status = status
	result.AllSucceeded = status == constants.OrderStatusCompleted
	result.Message = passMessage(status)
	return result, nil
}

// fulfillItem 单项交付：库存与发码/直充在保存点内完成，直充失败只回滚该项
func (s *FulfillmentService) fulfillItem(ctx context.Context, tx *gorm.DB, orderRepo *repository.GormOrderRepository, item *models.OrderItem) (string, error) {
	var detail string
	from := item.Status
	err := tx.Transaction(func(itemTx *gorm.DB) error {
		reserved, err := s.ledger.CheckAndReserve(itemTx, item.CatalogItemID, item.Quantity)
		if err != nil {
			return fmt.Errorf("%w: reserve stock: %v", ErrTransactionFailed, err)
		}
		if !reserved {
			item.Status = constants.OrderItemStatusFailed
			item.FailReason = constants.FulfillmentReasonInsufficientStock
			item.IssuedCode = nil
			detail = ErrInsufficientStock.Error()
			return saveItemOutcome(orderRepo.WithTx(itemTx), from, item)
		}

		if item.HasTargetAccount() {
			if err := s.creditor.Credit(ctx, *item); err != nil {
				return fmt.Errorf("%w: %v", ErrAccountCreditFailed, err)
			}
			item.IssuedCode = nil
			detail = "credited to account " + *item.TargetAccountID
		} else {
			code, err := s.codes.Generate(item.ItemType)
			if err != nil {
				return fmt.Errorf("%w: generate code: %v", ErrTransactionFailed, err)
			}
			item.IssuedCode = &code
			detail = "code issued"
		}
		now := s.now()
		item.Status = constants.OrderItemStatusFulfilled
		item.FailReason = ""
		item.FulfilledAt = &now
		return saveItemOutcome(orderRepo.WithTx(itemTx), from, item)
	})
	if err == nil {
		return detail, nil
	}
	if !errors.Is(err, ErrAccountCreditFailed) {
		return "", err
	}

	logger.Warnw("fulfillment_account_credit_failed", "order_id", item.OrderID, "order_item_id", item.ID, "error", err)
	item.Status = constants.OrderItemStatusFailed
	item.FailReason = constants.FulfillmentReasonCreditFailed
	item.IssuedCode = nil
	item.FulfilledAt = nil
	if err := saveItemOutcome(orderRepo, from, item); err != nil {
		return "", err
	}
	return ErrAccountCreditFailed.Error(), nil
}

// saveItemOutcome 只允许前向迁移，fulfilled 项不会被覆盖
func saveItemOutcome(orderRepo *repository.GormOrderRepository, from string, item *models.OrderItem) error {
	if !CanTransitionItem(from, item.Status) {
		return fmt.Errorf("%w: order item %d %s -> %s", ErrOrderStatusInvalid, item.ID, from, item.Status)
	}
	rows, err := orderRepo.SaveItemOutcome(item)
	if err != nil {
		return fmt.Errorf("%w: save item: %v", ErrTransactionFailed, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: order item %d already fulfilled", ErrTransactionFailed, item.ID)
	}
	return nil
}

func skippedItemDetail(status string) string {
	if status == constants.OrderItemStatusFulfilled {
		return "already fulfilled"
	}
	return fmt.Sprintf("item status %s is not retryable", status)
}

func buildItemResult(item *models.OrderItem, detail string) FulfillmentItemResult {
	res := FulfillmentItemResult{ItemID: item.ID, Status: item.Status, Detail: detail}
	if item.IssuedCode != nil {
		res.Code = *item.IssuedCode
	}
	return res
}

func notEligibleResult(order *models.Order) *FulfillmentResult {
	items := make([]FulfillmentItemResult, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, buildItemResult(&order.Items[i], ""))
	}
	return &FulfillmentResult{
		OrderID:      order.ID,
		AllSucceeded: order.Status == constants.OrderStatusCompleted,
		Status:       order.Status,
		Message:      fmt.Sprintf("order status %s is not eligible for fulfillment", order.Status),
		Items:        items,
	}
}

func passMessage(status string) string {
	switch status {
	case constants.OrderStatusCompleted:
		return "all items fulfilled"
	case constants.OrderStatusPartiallyFulfilled:
		return "some items could not be fulfilled"
	default:
		return "no items could be fulfilled"
	}
}
