package funds

import (
	"context"
	"fmt"

	ccxt "github.com/ccxt/ccxt/go/v4"
	"go.uber.org/zap"
)

type balanceClient interface {
	FetchBalance(ctx context.Context) (ccxt.Balances, error)
}

// Manager 负责在扫描开始前查询报价货币的可用余额。
// 余额只取一次，扫描过程中的资金账目由分配引擎自己维护。
type Manager struct {
	client   balanceClient
	currency string
	logger   *zap.Logger
}

// NewManager 创建资金查询器。
func NewManager(client balanceClient, currency string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client:   client,
		currency: currency,
		logger:   logger,
	}
}

// FetchFree 返回报价货币的可用余额。
// 无法确定余额属于致命配置故障，扫描不应开始。
func (m *Manager) FetchFree(ctx context.Context) (float64, error) {
	balances, err := m.client.FetchBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("funds: 获取账户余额失败: %w", err)
	}

	if balances.Free != nil {
		if free, ok := balances.Free[m.currency]; ok && free != nil {
			m.logger.Info("已获取可用余额",
				zap.String("currency", m.currency),
				zap.Float64("free", *free),
			)
			return *free, nil
		}
	}

	return 0, fmt.Errorf("funds: 无法确定 %s 的可用余额", m.currency)
}
