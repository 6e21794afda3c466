package app

import (
	"errors"

	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/provider"
	"github.com/gamecode-next/internal/router"
	"github.com/gamecode-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateMode(mode); err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)
	return buildServices(cfg, container, mode)
}

func buildServices(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		// 队列未启用时交付与通知走同步路径，不启动 asynq worker
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("app_queue_worker_skipped", "reason", "queue_disabled")
		}

		if interval := cfg.Fulfillment.ReconcileInterval(); interval > 0 {
			loop, err := worker.NewReconcileLoop(interval, container.ReconcileService)
			if err != nil {
				return nil, err
			}
			services = append(services, loop)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}
