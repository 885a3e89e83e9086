package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tier-trader/internal/config"
)

// App 聚合核心依赖并驱动系统生命周期。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run 执行一轮完整扫描；配置了 run_interval 时按固定间隔重复执行，
// 否则单次运行后退出。
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("分配系统已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.String("exchange", a.cfg.Exchange.Name),
		zap.String("base_currency", a.cfg.Trading.BaseCurrency),
		zap.Bool("simulation", a.cfg.Execution.Simulation),
	)

	orch, err := newOrchestrator(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}

	if err := orch.runPass(ctx); err != nil {
		if a.cfg.Scheduler.RunInterval <= 0 {
			return err
		}
		a.logger.Error("本轮扫描失败", zap.Error(err))
	}

	if a.cfg.Scheduler.RunInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(a.cfg.Scheduler.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("系统异常退出: %w", err)
			}
			a.logger.Info("系统收到退出信号，正在停止")
			return nil
		case <-ticker.C:
			if err := orch.runPass(ctx); err != nil {
				a.logger.Error("本轮扫描失败", zap.Error(err))
			}
		}
	}
}
