package main

import (
	"flag"
	"fmt"

	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/repository"
	"github.com/gamecode-next/internal/service"
)

type seedItem struct {
	Name     string
	ItemType string
	Category string
	Region   string
	Price    string
	Stock    int
}

var catalog = []seedItem{
	{Name: "PUBG Mobile 60 UC", ItemType: "pubg", Category: "currency", Region: "global", Price: "0.99", Stock: 500},
	{Name: "PUBG Mobile 660 UC", ItemType: "pubg", Category: "currency", Region: "global", Price: "9.99", Stock: 200},
	{Name: "Free Fire 100 Diamonds", ItemType: "free_fire", Category: "currency", Region: "sea", Price: "0.99", Stock: 300},
	{Name: "Free Fire 520 Diamonds", ItemType: "free_fire", Category: "currency", Region: "sea", Price: "4.99", Stock: 120},
	{Name: "Steam Wallet 20 USD", ItemType: "steam", Category: "gift_card", Region: "us", Price: "20.00", Stock: 40},
	{Name: "Battle Pass Season", ItemType: "pass", Category: "pass", Region: "global", Price: "12.50", Stock: 0},
}

func main() {
	var email string
	var adminID uint
	flag.StringVar(&email, "email", "demo@example.com", "演示客户邮箱")
	flag.UintVar(&adminID, "admin-id", 1, "签发管理员令牌使用的 ID")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Pool.ToModelsPool(), false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	for _, item := range catalog {
		var existing models.CatalogItem
		err := models.DB.Where("name = ?", item.Name).Limit(1).Find(&existing).Error
		if err != nil {
			stdLog.Printf("Failed to query catalog item %s: %v", item.Name, err)
			continue
		}
		if existing.ID != 0 {
			stdLog.Printf("Catalog item already exists: %s (id=%d stock=%d)", item.Name, existing.ID, existing.StockCount)
			continue
		}
		row := models.CatalogItem{
			Name:       item.Name,
			ItemType:   item.ItemType,
			Category:   item.Category,
			Region:     item.Region,
			Price:      models.MustMoney(item.Price),
			StockCount: item.Stock,
			IsActive:   true,
		}
		if err := models.DB.Create(&row).Error; err != nil {
			stdLog.Printf("Failed to create catalog item %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created catalog item: %s (id=%d)", item.Name, row.ID)
	}

	customer := models.Customer{Email: email, DisplayName: "demo", Locale: "en-US"}
	if err := models.DB.Where("email = ?", email).FirstOrCreate(&customer).Error; err != nil {
		stdLog.Fatalf("Failed to ensure demo customer: %v", err)
	}

	auth := service.NewAuthService(cfg.JWT, repository.NewCustomerRepository(models.DB))
	customerToken, expiresAt, err := auth.IssueCustomerToken(customer.ID)
	if err != nil {
		stdLog.Fatalf("Failed to issue customer token: %v", err)
	}
	adminToken, _, err := auth.IssueAdminToken(adminID)
	if err != nil {
		stdLog.Fatalf("Failed to issue admin token: %v", err)
	}

	fmt.Printf("customer_id=%d\n", customer.ID)
	fmt.Printf("customer_token=%s\n", customerToken)
	fmt.Printf("admin_token=%s\n", adminToken)
	fmt.Printf("expires_at=%s\n", expiresAt.Format("2006-01-02 15:04:05"))
}
