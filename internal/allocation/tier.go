package allocation

import "math"

// TierFraction 表示单行可占用剩余资金的基础比例。
type TierFraction float64

// maxTierMagnitude 为最高档位的跌幅上界。超过 99.9 的跌幅不属于任何档位，
// (99.9, 100] 同样视为未定义，刻意保留该边界而不向上取整。
const maxTierMagnitude = 99.9

// ClassifyTier 按跌幅绝对值将候选行映射到四个连续档位之一：
// [0,25]→0.05，(25,50]→0.10，(50,75]→0.15，(75,99.9]→0.20。
// 边界值归属下档，符号被丢弃，仅幅度参与分档。无档位时 ok 为 false。
func ClassifyTier(pctDown float64) (TierFraction, bool) {
	d := math.Abs(pctDown)

	switch {
	case d <= 25:
		return 0.05, true
	case d <= 50:
		return 0.10, true
	case d <= 75:
		return 0.15, true
	case d <= maxTierMagnitude:
		return 0.20, true
	default:
		return 0, false
	}
}
