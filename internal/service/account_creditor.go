package service

import (
	"context"
	"strings"

	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/models"
)

// AccountCreditor 游戏账号直充
type AccountCreditor interface {
	Credit(ctx context.Context, item models.OrderItem) error
}

// SimulatedAccountCreditor 模拟直充，只校验账号并记录日志
type SimulatedAccountCreditor struct{}

// NewSimulatedAccountCreditor 创建模拟直充
func NewSimulatedAccountCreditor() *SimulatedAccountCreditor {
	return &SimulatedAccountCreditor{}
}

// Credit 执行模拟直充
func (c *SimulatedAccountCreditor) Credit(ctx context.Context, item models.OrderItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.TargetAccountID == nil || strings.TrimSpace(*item.TargetAccountID) == "" {
		return ErrAccountCreditFailed
	}
	logger.Infow("account_credit_simulated",
		"order_id", item.OrderID,
		"order_item_id", item.ID,
		"item_type", item.ItemType,
		"quantity", item.Quantity,
		"target_account_id", *item.TargetAccountID,
	)
	return nil
}
