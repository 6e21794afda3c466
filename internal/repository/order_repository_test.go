package repository

import (
	"testing"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, status string, quantities ...int) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		CustomerID:  1,
		Status:      status,
		TotalAmount: models.MustMoney("10.00"),
	}
	items := make([]models.OrderItem, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, models.OrderItem{
			CatalogItemID: 1,
			ItemName:      "660 UC",
			ItemType:      "pubg",
			Quantity:      q,
			UnitPrice:     models.MustMoney("5.00"),
			Status:        constants.OrderItemStatusPending,
		})
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateAndGetByID(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, "GC-REPO-001", constants.OrderStatusPending, 1, 2, 3)

	payment := models.Payment{
		OrderID: order.ID,
		Method:  constants.PaymentMethodPaypal,
		Amount:  order.TotalAmount,
		Status:  constants.PaymentStatusPending,
	}
	if err := NewPaymentRepository(db).Create(&payment); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil || len(got.Items) != 3 {
		t.Fatalf("expected order with 3 items, got %+v", got)
	}
	for i := 1; i < len(got.Items); i++ {
		if got.Items[i-1].ID >= got.Items[i].ID {
			t.Fatalf("items should be ordered by id")
		}
	}
	if got.Payment == nil || got.Payment.ID != payment.ID {
		t.Fatalf("expected payment preloaded")
	}

	locked, err := repo.WithTx(db).GetByIDForUpdate(order.ID)
	if err != nil || locked == nil {
		t.Fatalf("get for update failed: %v", err)
	}

	missing, err := repo.GetByID(order.ID + 100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing order, got=%v err=%v", missing, err)
	}
}

func TestOrderRepositoryGetByIDAndCustomer(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, "GC-REPO-002", constants.OrderStatusPending, 1)

	got, err := repo.GetByIDAndCustomer(order.ID, 1)
	if err != nil || got == nil {
		t.Fatalf("expected owner to see order, err=%v", err)
	}
	other, err := repo.GetByIDAndCustomer(order.ID, 2)
	if err != nil || other != nil {
		t.Fatalf("other customer must not see order, got=%v err=%v", other, err)
	}
}

func TestOrderRepositoryListIDsByStatuses(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	pending := createTestOrder(t, repo, "GC-REPO-010", constants.OrderStatusPending, 1)
	partial := createTestOrder(t, repo, "GC-REPO-011", constants.OrderStatusPartiallyFulfilled, 1)
	createTestOrder(t, repo, "GC-REPO-012", constants.OrderStatusCompleted, 1)
	failed := createTestOrder(t, repo, "GC-REPO-013", constants.OrderStatusFailedFulfillment, 1)

	ids, err := repo.ListIDsByStatuses([]string{
		constants.OrderStatusPending,
		constants.OrderStatusPartiallyFulfilled,
		constants.OrderStatusFailedFulfillment,
	}, 0, 0)
	if err != nil {
		t.Fatalf("list ids failed: %v", err)
	}
	want := []uint{pending.ID, partial.ID, failed.ID}
	if len(ids) != len(want) {
		t.Fatalf("unexpected ids: %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected ids: got=%v want=%v", ids, want)
		}
	}

	limited, err := repo.ListIDsByStatuses([]string{constants.OrderStatusPending, constants.OrderStatusFailedFulfillment}, 0, 1)
	if err != nil || len(limited) != 1 || limited[0] != pending.ID {
		t.Fatalf("limit not applied: %v err=%v", limited, err)
	}

	next, err := repo.ListIDsByStatuses([]string{constants.OrderStatusPending, constants.OrderStatusFailedFulfillment}, limited[0], 1)
	if err != nil || len(next) != 1 || next[0] != failed.ID {
		t.Fatalf("cursor not applied: %v err=%v", next, err)
	}
	rest, err := repo.ListIDsByStatuses([]string{constants.OrderStatusPending, constants.OrderStatusFailedFulfillment}, failed.ID, 1)
	if err != nil || len(rest) != 0 {
		t.Fatalf("cursor past last id should be empty: %v err=%v", rest, err)
	}
}

func TestOrderRepositorySaveItemOutcomeKeepsFulfilledTerminal(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, "GC-REPO-020", constants.OrderStatusPending, 1)
	item := order.Items[0]

	code := "PUBG-2501011200-AAAA-BBBB-CCCC-DDDD"
	now := time.Now()
	item.Status = constants.OrderItemStatusFulfilled
	item.IssuedCode = &code
	item.FulfilledAt = &now
	rows, err := repo.SaveItemOutcome(&item)
	if err != nil || rows != 1 {
		t.Fatalf("save outcome failed: rows=%d err=%v", rows, err)
	}

	item.Status = constants.OrderItemStatusFailed
	item.IssuedCode = nil
	rows, err = repo.SaveItemOutcome(&item)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("fulfilled item must not be overwritten")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Items[0].Status != constants.OrderItemStatusFulfilled || got.Items[0].IssuedCode == nil || *got.Items[0].IssuedCode != code {
		t.Fatalf("unexpected item after overwrite attempt: %+v", got.Items[0])
	}

	if err := repo.UpdateStatus(order.ID, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, _ = repo.GetByID(order.ID)
	if got.Status != constants.OrderStatusCompleted {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestOrderRepositoryListPaginatesAndFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	first := createTestOrder(t, repo, "GC-REPO-030", constants.OrderStatusCompleted, 1)
	createTestOrder(t, repo, "GC-REPO-031", constants.OrderStatusFailedFulfillment, 1)
	third := createTestOrder(t, repo, "GC-REPO-032", constants.OrderStatusCompleted, 2)
	other := createTestOrder(t, repo, "GC-REPO-033", constants.OrderStatusCompleted, 1)
	if err := db.Model(&models.Order{}).Where("id = ?", other.ID).Update("customer_id", 2).Error; err != nil {
		t.Fatalf("move order failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{CustomerID: 1, Status: constants.OrderStatusCompleted, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 1 || orders[0].ID != third.ID {
		t.Fatalf("unexpected first page: total=%d orders=%d", total, len(orders))
	}
	if len(orders[0].Items) != 1 {
		t.Fatalf("items should be preloaded")
	}

	orders, _, err = repo.List(OrderListFilter{CustomerID: 1, Status: constants.OrderStatusCompleted, Page: 2, PageSize: 1})
	if err != nil || len(orders) != 1 || orders[0].ID != first.ID {
		t.Fatalf("unexpected second page: %v", err)
	}

	all, total, err := repo.List(OrderListFilter{})
	if err != nil || total != 4 || len(all) != 4 {
		t.Fatalf("unfiltered list should return all orders: total=%d err=%v", total, err)
	}
}
