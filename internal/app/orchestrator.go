package app

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tier-trader/internal/allocation"
	"tier-trader/internal/config"
	"tier-trader/internal/exchange"
	"tier-trader/internal/execution"
	"tier-trader/internal/funds"
	"tier-trader/internal/sheet"
)

type rowSource interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

type fundsSource interface {
	FetchFree(ctx context.Context) (float64, error)
}

// orchestrator 串联行来源、资金来源与分配引擎，驱动一次完整扫描。
type orchestrator struct {
	rows   rowSource
	funds  fundsSource
	engine *allocation.Engine
	logger *zap.Logger
}

func newOrchestrator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*orchestrator, error) {
	sheetClient, err := sheet.NewClient(ctx, cfg.Sheet, logger)
	if err != nil {
		return nil, err
	}

	exClient, err := exchange.NewClient(cfg.Exchange, logger)
	if err != nil {
		return nil, err
	}

	fundsMgr := funds.NewManager(exClient, cfg.Trading.BaseCurrency, logger)

	var placer allocation.OrderPlacer = exClient
	if cfg.Execution.Simulation {
		logger.Info("执行器处于模拟模式")
		placer = execution.NewSimulated(logger)
	}

	engine := allocation.NewEngine(placer, allocation.Params{
		BaseCurrency: cfg.Trading.BaseCurrency,
		MinNotional:  cfg.Trading.MinOrderNotional,
	}, logger)

	return &orchestrator{
		rows:   sheetClient,
		funds:  fundsMgr,
		engine: engine,
		logger: logger,
	}, nil
}

// runPass 执行一轮完整的拉取与分配。候选行与可用余额在扫描开始前
// 并发取齐，扫描本身严格顺序执行。
func (o *orchestrator) runPass(ctx context.Context) error {
	var (
		rows      [][]string
		freeFunds float64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		data, err := o.rows.FetchRows(groupCtx)
		if err != nil {
			return err
		}
		rows = data
		return nil
	})

	group.Go(func() error {
		free, err := o.funds.FetchFree(groupCtx)
		if err != nil {
			return err
		}
		freeFunds = free
		return nil
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, exchange.ErrMaintenance) {
			o.logger.Warn("交易所维护中，跳过本轮扫描", zap.Error(err))
			return nil
		}
		return err
	}

	if len(rows) == 0 {
		o.logger.Info("没有可处理的候选行，本轮结束")
		return nil
	}

	if freeFunds <= 0 {
		o.logger.Info("没有可用资金，本轮不下任何订单",
			zap.Float64("free_funds", freeFunds),
		)
		return nil
	}

	report := o.engine.Run(ctx, rows, freeFunds)
	o.renderSummary(report)
	return nil
}

func (o *orchestrator) renderSummary(report allocation.Report) {
	for _, order := range report.Placed {
		o.logger.Info("已成交订单",
			zap.Int("row", order.Row),
			zap.String("market_symbol", order.MarketSymbol),
			zap.Float64("amount", order.Amount),
			zap.Float64("notional", order.Notional),
			zap.String("order_id", order.OrderID),
		)
	}

	o.logger.Info("本轮扫描完成",
		zap.Int("rows_processed", len(report.Outcomes)),
		zap.Int("orders_placed", len(report.Placed)),
		zap.Float64("starting_funds", report.StartingFunds),
		zap.Float64("remaining_funds", report.RemainingFunds),
		zap.Bool("funds_exhausted", report.Exhausted),
	)
}
