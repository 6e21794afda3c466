package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/provider"
	"github.com/gamecode-next/internal/queue"
	"github.com/gamecode-next/internal/service"

	"github.com/hibiken/asynq"
)

// errConfirmationNotSent 通知未送达，交给 asynq 重试
var errConfirmationNotSent = errors.New("order confirmation not sent")

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderFulfill, c.handleOrderFulfill)
	mux.HandleFunc(queue.TaskOrderConfirmation, c.handleOrderConfirmation)
}

func (c *Consumer) handleOrderFulfill(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_fulfill_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderFulfillPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_fulfill_invalid_payload", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.FulfillmentService == nil {
		logger.Warnw("worker_order_fulfill_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	result, err := c.FulfillmentService.Fulfill(ctx, payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_fulfill_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrFulfillmentInProgress):
			logger.Debugw("worker_order_fulfill_busy", "order_id", payload.OrderID)
			return err
		default:
			logger.Warnw("worker_order_fulfill_failed", "order_id", payload.OrderID, "source", payload.Source, "error", err)
			return err
		}
	}
	logger.Infow("worker_order_fulfill_done",
		"order_id", payload.OrderID,
		"source", payload.Source,
		"status", result.Status,
		"all_succeeded", result.AllSucceeded,
	)
	return nil
}

func (c *Consumer) handleOrderConfirmation(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderConfirmationPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_confirmation_invalid_payload", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_confirmation_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	result, err := c.NotificationService.SendOrderConfirmation(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_confirmation_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if !result.Sent && result.Recipient != "" {
		logger.Warnw("worker_order_confirmation_not_sent",
			"order_id", payload.OrderID,
			"recipient", result.Recipient,
			"detail", result.Detail,
		)
		return fmt.Errorf("%w: %s", errConfirmationNotSent, result.Detail)
	}
	return nil
}
