package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/gamecode-next/internal/app"
	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	debugSQL := cfg.Server.Mode == "debug"
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Pool.ToModelsPool(), debugSQL); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 演示数据仅在显式开启时写入
	if cfg.Server.SeedDemo {
		if cfg.Server.Mode == "release" {
			stdLog.Printf("警告: release 模式下已忽略 server.seed_demo")
		} else if err := models.SeedDemoData(nil); err != nil {
			stdLog.Printf("警告: 写入演示数据失败: %v", err)
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + "  ____                       ____          _      " + ansiReset)
	fmt.Println(ansiCyan + " / ___| __ _ _ __ ___   ___ / ___|___   __| | ___ " + ansiReset)
	fmt.Println(ansiCyan + "| |  _ / _` | '_ ` _ \\ / _ \\ |   / _ \\ / _` |/ _ \\" + ansiReset)
	fmt.Println(ansiCyan + "| |_| | (_| | | | | | |  __/ |__| (_) | (_| |  __/" + ansiReset)
	fmt.Println(ansiCyan + " \\____|\\__,_|_| |_| |_|\\___|\\____\\___/ \\__,_|\\___|" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "GameCode-Next fulfillment API" + ansiReset + ansiDim + " (mode=" + mode + ")" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
