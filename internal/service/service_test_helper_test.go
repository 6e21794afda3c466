package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	orders []uint
}

func (d *recordingDispatcher) DispatchOrderConfirmation(_ context.Context, orderID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, orderID)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.orders)
}

type pipelineTestEnv struct {
	db          *gorm.DB
	orderRepo   *repository.GormOrderRepository
	catalogRepo *repository.GormCatalogRepository
	cartRepo    *repository.GormCartRepository
	paymentRepo *repository.GormPaymentRepository
	codes       *CodeGenerator
	fulfillment *FulfillmentService
	checkout    *CheckoutService
	reconcile   *ReconcileService
	cart        *CartService
	dispatcher  *recordingDispatcher
	customer    models.Customer
}

func setupPipelineTest(t *testing.T) *pipelineTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_pipeline_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	env := &pipelineTestEnv{
		db:          db,
		orderRepo:   repository.NewOrderRepository(db),
		catalogRepo: repository.NewCatalogRepository(db),
		cartRepo:    repository.NewCartRepository(db),
		paymentRepo: repository.NewPaymentRepository(db),
		codes:       NewCodeGenerator(),
		dispatcher:  &recordingDispatcher{},
	}
	env.fulfillment = NewFulfillmentService(
		db,
		env.orderRepo,
		NewInventoryLedger(env.catalogRepo),
		env.codes,
		NewSimulatedAccountCreditor(),
		NewOrderLocker(0),
		nil,
	)
	env.fulfillment.SetDispatcher(env.dispatcher)
	env.checkout = NewCheckoutService(db, env.cartRepo, env.orderRepo, env.paymentRepo, env.fulfillment, nil, nil)
	env.reconcile = NewReconcileService(env.orderRepo, env.paymentRepo, env.fulfillment, 0, nil)
	env.cart = NewCartService(env.cartRepo, env.catalogRepo)

	env.customer = models.Customer{Email: "buyer@example.com", DisplayName: "Buyer", Locale: "en-US"}
	if err := db.Create(&env.customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return env
}

func (env *pipelineTestEnv) createCatalogItem(t *testing.T, name, itemType, price string, stock int) models.CatalogItem {
	t.Helper()
	item := models.CatalogItem{
		Name:       name,
		ItemType:   itemType,
		Price:      models.MustMoney(price),
		StockCount: stock,
		IsActive:   true,
	}
	if err := env.db.Create(&item).Error; err != nil {
		t.Fatalf("create catalog item failed: %v", err)
	}
	return item
}

func (env *pipelineTestEnv) addToCart(t *testing.T, itemID uint, quantity int, account *string) {
	t.Helper()
	if err := env.cart.AddItem(AddCartItemInput{
		CustomerID:      env.customer.ID,
		CatalogItemID:   itemID,
		Quantity:        quantity,
		TargetAccountID: account,
	}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
}

// createPaidOrder 直接写入已支付的 pending 订单，不经过结算
func (env *pipelineTestEnv) createPaidOrder(t *testing.T, paymentStatus string, lines ...models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     fmt.Sprintf("GC-TEST-%d", time.Now().UnixNano()),
		CustomerID:  env.customer.ID,
		Status:      constants.OrderStatusPending,
		TotalAmount: models.MustMoney("1.00"),
	}
	for i := range lines {
		if lines[i].Status == "" {
			lines[i].Status = constants.OrderItemStatusPending
		}
	}
	if err := env.orderRepo.Create(order, lines); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	payment := models.Payment{
		OrderID: order.ID,
		Method:  constants.PaymentMethodCreditCard,
		Amount:  order.TotalAmount,
		Status:  paymentStatus,
	}
	if err := env.paymentRepo.Create(&payment); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	return order
}

func (env *pipelineTestEnv) stockOf(t *testing.T, itemID uint) int {
	t.Helper()
	stock, err := env.catalogRepo.StockCount(itemID)
	if err != nil {
		t.Fatalf("read stock failed: %v", err)
	}
	return stock
}

func (env *pipelineTestEnv) setStock(t *testing.T, itemID uint, stock int) {
	t.Helper()
	if err := env.db.Model(&models.CatalogItem{}).Where("id = ?", itemID).Update("stock_count", stock).Error; err != nil {
		t.Fatalf("set stock failed: %v", err)
	}
}

func (env *pipelineTestEnv) reloadOrder(t *testing.T, orderID uint) *models.Order {
	t.Helper()
	order, err := env.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	return order
}

func orderLine(item models.CatalogItem, quantity int, account *string) models.OrderItem {
	return models.OrderItem{
		CatalogItemID:   item.ID,
		ItemName:        item.Name,
		ItemType:        item.ItemType,
		Quantity:        quantity,
		UnitPrice:       item.Price,
		TargetAccountID: account,
	}
}

func strPtr(v string) *string {
	return &v
}
