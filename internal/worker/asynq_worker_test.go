package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/provider"
	"github.com/gamecode-next/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_consumer_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Notify: config.NotifyConfig{Enabled: true, Channel: constants.NotificationChannelLog},
	}
	return NewConsumer(provider.Build(cfg, db, nil, nil)), db
}

func createWorkerOrder(t *testing.T, db *gorm.DB, stock int) *models.Order {
	t.Helper()
	customer := models.Customer{Email: "worker@example.com"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	item := models.CatalogItem{Name: "660 UC", ItemType: "pubg", Price: models.MustMoney("9.99"), StockCount: stock, IsActive: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create catalog item failed: %v", err)
	}
	order := &models.Order{
		OrderNo:     fmt.Sprintf("GC-WORKER-%d", time.Now().UnixNano()),
		CustomerID:  customer.ID,
		Status:      constants.OrderStatusFailedFulfillment,
		TotalAmount: item.Price,
		Items: []models.OrderItem{{
			CatalogItemID: item.ID,
			ItemName:      item.Name,
			ItemType:      item.ItemType,
			Quantity:      1,
			UnitPrice:     item.Price,
			Status:        constants.OrderItemStatusFailed,
		}},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestHandleOrderFulfillCompletesOrder(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	order := createWorkerOrder(t, db, 2)

	task, err := queue.NewOrderFulfillTask(queue.OrderFulfillPayload{OrderID: order.ID, Source: "retry"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderFulfill(context.Background(), task); err != nil {
		t.Fatalf("handle fulfill failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", reloaded.Status)
	}
	var logs int64
	db.Model(&models.NotificationLog{}).Where("order_id = ?", order.ID).Count(&logs)
	if logs != 1 {
		t.Fatalf("expected inline confirmation log, got %d", logs)
	}
}

func TestHandleOrderFulfillSkipsMissingOrder(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	task, _ := queue.NewOrderFulfillTask(queue.OrderFulfillPayload{OrderID: 404})
	if err := consumer.handleOrderFulfill(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderTasksRejectInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	bad := asynq.NewTask(queue.TaskOrderFulfill, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderFulfill(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	bad = asynq.NewTask(queue.TaskOrderConfirmation, []byte(`not-json`))
	if err := consumer.handleOrderConfirmation(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleOrderConfirmationWritesLog(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	order := createWorkerOrder(t, db, 0)

	task, _ := queue.NewOrderConfirmationTask(queue.OrderConfirmationPayload{OrderID: order.ID})
	if err := consumer.handleOrderConfirmation(context.Background(), task); err != nil {
		t.Fatalf("handle confirmation failed: %v", err)
	}
	var entry models.NotificationLog
	if err := db.Where("order_id = ?", order.ID).First(&entry).Error; err != nil {
		t.Fatalf("load notification log failed: %v", err)
	}
	if entry.Status != constants.NotificationStatusSent || entry.Recipient != "worker@example.com" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	missing, _ := queue.NewOrderConfirmationTask(queue.OrderConfirmationPayload{OrderID: 404})
	if err := consumer.handleOrderConfirmation(context.Background(), missing); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestNilConsumerIsSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(asynq.NewServeMux())
	if err := consumer.handleOrderFulfill(context.Background(), nil); err != nil {
		t.Fatalf("nil consumer should be no-op, got %v", err)
	}
}
