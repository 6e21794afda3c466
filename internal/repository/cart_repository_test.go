package repository

import (
	"testing"

	"github.com/gamecode-next/internal/models"
)

func TestCartRepositoryUpsertAndClear(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	first := createCatalogItem(t, db, "660 UC", "9.99", 10)
	second := createCatalogItem(t, db, "520 Diamonds", "4.99", 10)

	if err := repo.Upsert(&models.CartItem{CustomerID: 1, CatalogItemID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert first failed: %v", err)
	}
	account := "player-42"
	if err := repo.Upsert(&models.CartItem{CustomerID: 1, CatalogItemID: second.ID, Quantity: 2, TargetAccountID: &account}); err != nil {
		t.Fatalf("upsert second failed: %v", err)
	}
	if err := repo.Upsert(&models.CartItem{CustomerID: 1, CatalogItemID: first.ID, Quantity: 4}); err != nil {
		t.Fatalf("upsert overwrite failed: %v", err)
	}
	if err := repo.Upsert(&models.CartItem{CustomerID: 2, CatalogItemID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert other customer failed: %v", err)
	}

	items, err := repo.ListByCustomer(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 cart lines, got %d", len(items))
	}
	if items[0].CatalogItemID != first.ID || items[0].Quantity != 4 {
		t.Fatalf("unexpected first line: %+v", items[0])
	}
	if items[0].CatalogItem == nil || items[0].CatalogItem.Name != "660 UC" {
		t.Fatalf("catalog item should be preloaded")
	}
	if items[1].TargetAccountID == nil || *items[1].TargetAccountID != account {
		t.Fatalf("target account should be kept")
	}

	rows, err := repo.DeleteByCustomerAndItem(1, second.ID)
	if err != nil || rows != 1 {
		t.Fatalf("delete line failed: rows=%d err=%v", rows, err)
	}
	if err := repo.ClearByCustomer(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	items, _ = repo.ListByCustomer(1)
	if len(items) != 0 {
		t.Fatalf("cart should be empty after clear")
	}
	others, _ := repo.ListByCustomer(2)
	if len(others) != 1 {
		t.Fatalf("other customer's cart must be untouched")
	}
	again, err := repo.GetByCustomerAndItem(1, first.ID)
	if err != nil || again != nil {
		t.Fatalf("expected cleared line to be gone, got=%v err=%v", again, err)
	}
}
