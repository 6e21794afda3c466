package router

import (
	"fmt"
	"strings"

	"github.com/gamecode-next/internal/cache"
	"github.com/gamecode-next/internal/config"
	adminhandlers "github.com/gamecode-next/internal/http/handlers/admin"
	publichandlers "github.com/gamecode-next/internal/http/handlers/public"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gc"
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Checkout.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Checkout.RateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", healthHandler(c))
	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 客户接口（需鉴权）
		user := apiV1.Group("/user")
		user.Use(CustomerJWTAuthMiddleware(c.AuthService))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/checkout", RateLimitMiddleware(cache.Client(), checkoutRule, KeyByCustomer), publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(AdminJWTAuthMiddleware(c.AuthService))
		{
			fulfillment := admin.Group("/fulfillment")
			fulfillment.GET("/orders", adminHandler.AdminListOrders)
			fulfillment.GET("/orders/:id", adminHandler.AdminGetOrder)
			fulfillment.POST("/orders/:id", adminHandler.AdminFulfillOrder)
			fulfillment.POST("/orders/:id/confirmation", adminHandler.AdminSendConfirmation)
			fulfillment.GET("/orders/:id/notifications", adminHandler.AdminListNotifications)
			fulfillment.POST("/reconcile", adminHandler.AdminReconcile)
			fulfillment.POST("/codes", adminHandler.AdminGenerateCodes)
		}
	}

	return r
}

// healthHandler 检查数据库与 Redis 连通性
func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{"database": "ok", "redis": "disabled"}
		healthy := true
		if c == nil || c.DB == nil {
			status["database"] = "unavailable"
			healthy = false
		} else if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
			status["database"] = "unavailable"
			healthy = false
		}
		if cache.Enabled() {
			status["redis"] = "ok"
			if err := cache.Ping(ctx.Request.Context()); err != nil {
				logger.Warnw("healthz_redis_ping_failed", "error", err)
				status["redis"] = "unavailable"
			}
		}
		if !healthy {
			response.Internal(ctx, "unhealthy")
			return
		}
		response.Success(ctx, status)
	}
}
