package service

import (
	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
)

// fulfillableOrderStatuses 允许进入交付流程的订单状态
var fulfillableOrderStatuses = map[string]struct{}{
	constants.OrderStatusPending:            {},
	constants.OrderStatusProcessing:         {},
	constants.OrderStatusPartiallyFulfilled: {},
	constants.OrderStatusFailedFulfillment:  {},
}

// reconcilableOrderStatuses 批量对账扫描的订单状态
var reconcilableOrderStatuses = []string{
	constants.OrderStatusPending,
	constants.OrderStatusPartiallyFulfilled,
	constants.OrderStatusFailedFulfillment,
}

// orderTransitions 订单状态迁移表
var orderTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCompleted,
		constants.OrderStatusPartiallyFulfilled,
		constants.OrderStatusFailedFulfillment,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusCompleted,
		constants.OrderStatusPartiallyFulfilled,
		constants.OrderStatusFailedFulfillment,
	},
	constants.OrderStatusPartiallyFulfilled: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCompleted,
		constants.OrderStatusPartiallyFulfilled,
		constants.OrderStatusFailedFulfillment,
	},
	constants.OrderStatusFailedFulfillment: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCompleted,
		constants.OrderStatusPartiallyFulfilled,
		constants.OrderStatusFailedFulfillment,
	},
}

// IsFulfillableStatus 判断订单是否可交付
func IsFulfillableStatus(status string) bool {
	_, ok := fulfillableOrderStatuses[status]
	return ok
}

// CanTransitionOrder 判断订单状态迁移是否合法，completed 为终态
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionItem 判断订单项状态迁移是否合法，fulfilled 为终态
func CanTransitionItem(from, to string) bool {
	switch from {
	case constants.OrderItemStatusPending:
		return to == constants.OrderItemStatusFulfilled || to == constants.OrderItemStatusFailed
	case constants.OrderItemStatusFailed:
		return to == constants.OrderItemStatusFulfilled || to == constants.OrderItemStatusFailed
	default:
		return false
	}
}

// DeriveOrderStatus 根据订单项状态推导订单状态
func DeriveOrderStatus(items []models.OrderItem) string {
	if len(items) == 0 {
		return constants.OrderStatusFailedFulfillment
	}
	fulfilled := 0
	for _, item := range items {
		if item.Status == constants.OrderItemStatusFulfilled {
			fulfilled++
		}
	}
	switch {
	case fulfilled == len(items):
		return constants.OrderStatusCompleted
	case fulfilled > 0:
		return constants.OrderStatusPartiallyFulfilled
	default:
		return constants.OrderStatusFailedFulfillment
	}
}

// hasFulfilledItem 是否至少有一个订单项已交付
func hasFulfilledItem(status string) bool {
	return status == constants.OrderStatusCompleted || status == constants.OrderStatusPartiallyFulfilled
}
