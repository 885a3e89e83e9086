package allocation

import (
	"errors"
	"fmt"

	"tier-trader/internal/screener"
)

// ErrSentimentMissing 表示情绪值缺失、无法解析或非正，
// 含义是"不买入该行"，而不是乘数为零。
var ErrSentimentMissing = errors.New("sentiment 缺失或非正值")

// CompositeMultiplier 由三个独立因子构成，作用于档位基础预算。
type CompositeMultiplier struct {
	IconMult      float64
	MARatio       float64
	SentimentMult float64
}

// Product 返回三个因子的乘积。
func (m CompositeMultiplier) Product() float64 {
	return m.IconMult * m.MARatio * m.SentimentMult
}

// Compose 合成一行的复合乘数。icon 不在集合内或情绪值不可用时返回错误，
// 调用方据此跳过该行。MARatio = long_ma / price，不做截断：
// 均线高于现价会放大订单，低于现价则收敛。price 为正由行校验保证。
func Compose(icon string, price, longMA float64, sentiment string) (CompositeMultiplier, error) {
	iconMult, ok := screener.IconMultiplier(icon)
	if !ok {
		return CompositeMultiplier{}, fmt.Errorf("%w: %q", screener.ErrIconNotAllowed, icon)
	}

	sentMult, ok := screener.ParseFloat(sentiment)
	if !ok || sentMult <= 0 {
		return CompositeMultiplier{}, ErrSentimentMissing
	}

	return CompositeMultiplier{
		IconMult:      iconMult,
		MARatio:       longMA / price,
		SentimentMult: sentMult,
	}, nil
}
