package service

import (
	"github.com/gamecode-next/internal/repository"

	"gorm.io/gorm"
)

// InventoryLedger 库存台账
type InventoryLedger struct {
	catalogRepo repository.CatalogRepository
}

// NewInventoryLedger 创建库存台账
func NewInventoryLedger(catalogRepo repository.CatalogRepository) *InventoryLedger {
	return &InventoryLedger{catalogRepo: catalogRepo}
}

// CheckAndReserve 原子扣减库存，库存不足返回 false 且不改动库存
func (l *InventoryLedger) CheckAndReserve(tx *gorm.DB, catalogItemID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	repo := l.catalogRepo
	if tx != nil {
		repo = l.catalogRepo.WithTx(tx)
	}
	rows, err := repo.DecrementStock(catalogItemID, quantity)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Available 读取当前可用库存
func (l *InventoryLedger) Available(catalogItemID uint) (int, error) {
	return l.catalogRepo.StockCount(catalogItemID)
}
