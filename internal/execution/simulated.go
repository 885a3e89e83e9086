package execution

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tier-trader/internal/allocation"
)

// Simulated 在不触达交易所的情况下模拟下单，
// 返回递增的模拟订单号，便于安全地演练完整扫描。
type Simulated struct {
	logger *zap.Logger
	seq    int
}

var _ allocation.OrderPlacer = (*Simulated)(nil)

// NewSimulated 创建模拟下单器。
func NewSimulated(logger *zap.Logger) *Simulated {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulated{logger: logger}
}

// PlaceMarketBuy 记录订单并返回模拟订单号，永不失败。
func (s *Simulated) PlaceMarketBuy(ctx context.Context, marketSymbol string, amount float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.seq++
	orderID := fmt.Sprintf("sim-%04d", s.seq)

	s.logger.Info("模拟下单",
		zap.String("market_symbol", marketSymbol),
		zap.Float64("amount", amount),
		zap.String("order_id", orderID),
	)

	return orderID, nil
}
