package repository

import (
	"testing"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
)

func TestPaymentRepositoryMarkCompletedOnlyFromPending(t *testing.T) {
	db := setupRepositoryTestDB(t)
	orderRepo := NewOrderRepository(db)
	repo := NewPaymentRepository(db)
	order := createTestOrder(t, orderRepo, "GC-PAY-001", constants.OrderStatusPending, 1)

	payment := models.Payment{
		OrderID: order.ID,
		Method:  constants.PaymentMethodCreditCard,
		Amount:  order.TotalAmount,
		Status:  constants.PaymentStatusPending,
	}
	if err := repo.Create(&payment); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	paidAt := time.Now().UTC().Truncate(time.Second)
	rows, err := repo.MarkCompleted(payment.ID, "SIM-GC-PAY-001-abcd1234", paidAt)
	if err != nil || rows != 1 {
		t.Fatalf("mark completed failed: rows=%d err=%v", rows, err)
	}
	rows, err = repo.MarkCompleted(payment.ID, "SIM-other", paidAt)
	if err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("completed payment must not be settled twice")
	}
	if rows, _ := repo.MarkFailed(payment.ID); rows != 0 {
		t.Fatalf("completed payment must not be marked failed")
	}

	got, err := repo.GetByOrderID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if got.Status != constants.PaymentStatusCompleted || got.TransactionID != "SIM-GC-PAY-001-abcd1234" || got.PaidAt == nil {
		t.Fatalf("unexpected payment: %+v", got)
	}

	missing, err := repo.GetByOrderID(order.ID + 1)
	if err != nil || missing != nil {
		t.Fatalf("expected nil payment, got=%v err=%v", missing, err)
	}
}
