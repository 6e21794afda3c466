package queue

import (
	"encoding/json"
	"errors"

	"github.com/gamecode-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderFulfill 订单交付（含重试）任务
	TaskOrderFulfill = constants.TaskOrderFulfill
	// TaskOrderConfirmation 订单确认通知任务
	TaskOrderConfirmation = constants.TaskOrderConfirmation
)

// ErrInvalidPayload 任务载荷非法
var ErrInvalidPayload = errors.New("invalid task payload")

// OrderFulfillPayload 交付任务载荷
type OrderFulfillPayload struct {
	OrderID uint   `json:"order_id"`
	Source  string `json:"source,omitempty"`
}

// OrderConfirmationPayload 确认通知任务载荷
type OrderConfirmationPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderFulfillTask 创建交付任务
func NewOrderFulfillTask(payload OrderFulfillPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderFulfill, body), nil
}

// NewOrderConfirmationTask 创建确认通知任务
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmation, body), nil
}

// ParseOrderFulfillPayload 解析交付任务载荷
func ParseOrderFulfillPayload(body []byte) (OrderFulfillPayload, error) {
	var payload OrderFulfillPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, ErrInvalidPayload
	}
	return payload, nil
}

// ParseOrderConfirmationPayload 解析确认通知任务载荷
func ParseOrderConfirmationPayload(body []byte) (OrderConfirmationPayload, error) {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, ErrInvalidPayload
	}
	return payload, nil
}
