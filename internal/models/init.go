package models

import (
	"time"

	"github.com/gamecode-next/internal/logger"

	"gorm.io/gorm"
)

// SeedDemoData 空库时写入演示客户与商品（仅开发模式调用）
func SeedDemoData(db *gorm.DB) error {
	if db == nil {
		db = DB
	}
	var count int64
	if err := db.Model(&CatalogItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debugw("seed_demo_data_skip_not_empty", "catalog_items", count)
		return nil
	}

	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		customer := Customer{
			Email:       "demo@example.com",
			DisplayName: "demo",
			Locale:      "en-US",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		items := []CatalogItem{
			{Name: "PUBG Mobile 660 UC", ItemType: "pubg", Category: "currency", Region: "global", Price: MustMoney("9.99"), StockCount: 100, IsActive: true},
			{Name: "Free Fire 520 Diamonds", ItemType: "free_fire", Category: "currency", Region: "global", Price: MustMoney("4.99"), StockCount: 50, IsActive: true},
			{Name: "Battle Pass Season", ItemType: "pass", Category: "pass", Region: "global", Price: MustMoney("12.50"), StockCount: 0, IsActive: true},
		}
		for i := range items {
			items[i].CreatedAt = now
			items[i].UpdatedAt = now
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		logger.Infow("seed_demo_data_created", "customer_id", customer.ID, "catalog_items", len(items))
		return nil
	})
}
