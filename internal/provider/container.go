package provider

import (
	"github.com/gamecode-next/internal/cache"
	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/metrics"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/queue"
	"github.com/gamecode-next/internal/repository"
	"github.com/gamecode-next/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Metrics     *metrics.Pipeline

	// Repositories
	CustomerRepo        repository.CustomerRepository
	CatalogRepo         repository.CatalogRepository
	CartRepo            repository.CartRepository
	OrderRepo           repository.OrderRepository
	PaymentRepo         repository.PaymentRepository
	NotificationLogRepo repository.NotificationLogRepository

	// Services
	AuthService         *service.AuthService
	CodeGenerator       *service.CodeGenerator
	InventoryLedger     *service.InventoryLedger
	OrderLocker         *service.OrderLocker
	CartService         *service.CartService
	OrderQueryService   *service.OrderQueryService
	FulfillmentService  *service.FulfillmentService
	NotificationService *service.NotificationService
	CheckoutService     *service.CheckoutService
	ReconcileService    *service.ReconcileService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	var registerer prometheus.Registerer
	if cfg.Metrics.Enabled {
		registerer = prometheus.DefaultRegisterer
	}
	return Build(cfg, models.DB, queueClient, registerer)
}

// Build 基于已就绪的数据库与队列组装容器；registerer 为 nil 时不采集指标
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, registerer prometheus.Registerer) *Container {
	if queueClient == nil {
		queueClient, _ = queue.NewClient(nil)
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
	}
	if registerer != nil {
		c.Metrics = metrics.NewPipeline(registerer)
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CatalogRepo = repository.NewCatalogRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.NotificationLogRepo = repository.NewNotificationLogRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config
	c.AuthService = service.NewAuthService(cfg.JWT, c.CustomerRepo)
	c.CodeGenerator = service.NewCodeGenerator()
	c.InventoryLedger = service.NewInventoryLedger(c.CatalogRepo)
	c.OrderLocker = service.NewOrderLocker(cfg.Fulfillment.LockTTL())
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogRepo)
	c.OrderQueryService = service.NewOrderQueryService(c.OrderRepo, c.NotificationLogRepo)

	c.FulfillmentService = service.NewFulfillmentService(
		c.DB,
		c.OrderRepo,
		c.InventoryLedger,
		c.CodeGenerator,
		service.NewSimulatedAccountCreditor(),
		c.OrderLocker,
		c.Metrics,
	)
	c.NotificationService = service.NewNotificationService(
		c.OrderRepo,
		c.CustomerRepo,
		c.NotificationLogRepo,
		newNotificationChannel(cfg.Notify.Channel),
		c.QueueClient,
		service.NotificationOptions{
			Enabled: cfg.Notify.Enabled,
			Sender:  cfg.Notify.Sender,
			Timeout: cfg.Notify.Timeout(),
		},
		c.Metrics,
	)
	c.FulfillmentService.SetDispatcher(c.NotificationService)
	c.FulfillmentService.SetRetryQueue(c.QueueClient, cfg.Fulfillment.RetryDelay())

	c.CheckoutService = service.NewCheckoutService(
		c.DB,
		c.CartRepo,
		c.OrderRepo,
		c.PaymentRepo,
		c.FulfillmentService,
		cfg.Checkout.PaymentMethods,
		c.Metrics,
	)
	c.ReconcileService = service.NewReconcileService(
		c.OrderRepo,
		c.PaymentRepo,
		c.FulfillmentService,
		cfg.Fulfillment.ReconcileBatchSize,
		c.Metrics,
	)
}

// newNotificationChannel 目前仅提供日志通道，未知配置回退并告警
func newNotificationChannel(name string) service.NotificationChannel {
	switch name {
	case "", "log":
		return service.LogNotificationChannel{}
	default:
		logger.Warnw("provider_unknown_notify_channel", "channel", name, "fallback", "log")
		return service.LogNotificationChannel{}
	}
}
