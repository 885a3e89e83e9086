package screener

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 工作表固定列布局（0 起始）。列位置是配置常量，不在运行时探测。
const (
	ColSymbol    = 0  // A: 币种符号，如 ETH
	ColPrice     = 1  // B: 当前价格
	ColPctDown   = 2  // C: 距历史高点的跌幅百分比
	ColLongMA    = 8  // I: 长周期均线
	ColIcon      = 14 // O: 评级图标
	ColSentiment = 15 // P: 情绪值（可选列）

	// MinColumns 为一行可被解析所需的最少列数。
	MinColumns = ColSentiment + 1
)

// 行级拒绝原因，每种均可独立断言。
var (
	ErrTooFewColumns    = errors.New("列数不足")
	ErrMissingField     = errors.New("必填字段缺失")
	ErrIconNotAllowed   = errors.New("icon 不在允许集合内")
	ErrInvalidNumber    = errors.New("数值字段无法解析")
	ErrNonPositivePrice = errors.New("价格必须为正")
)

// iconMultipliers 为封闭的评级图标集合及其对应乘数。
var iconMultipliers = map[string]float64{
	"💎": 1.0,
	"💥": 0.9,
	"🚀": 0.8,
	"✨": 0.7,
	"📊": 0.6,
}

// IconMultiplier 返回图标对应的乘数，图标不在集合内时 ok 为 false。
func IconMultiplier(icon string) (float64, bool) {
	mult, ok := iconMultipliers[icon]
	return mult, ok
}

// CandidateRow 表示一条通过校验的候选行。行一经解析即不可变，
// 不存在部分有效的记录。Sentiment 保留原始字符串，由乘数合成器单独判定。
type CandidateRow struct {
	Symbol    string
	Price     float64
	PctDown   float64
	LongMA    float64
	Icon      string
	Sentiment string
}

// ParseFloat 宽松解析数值字段：空串、纯空白与无法解析的文本
// 一律视为缺失，返回 ok=false，绝不 panic。
func ParseFloat(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseRow 按固定列布局将原始行解析为 CandidateRow，
// 任何一项校验失败都返回对应的拒绝原因。
func ParseRow(fields []string) (CandidateRow, error) {
	if len(fields) < MinColumns {
		return CandidateRow{}, fmt.Errorf("%w: 仅有 %d 列，至少需要 %d 列", ErrTooFewColumns, len(fields), MinColumns)
	}

	symbol := strings.ToUpper(strings.TrimSpace(fields[ColSymbol]))
	priceStr := strings.TrimSpace(fields[ColPrice])
	pctDownStr := strings.TrimSpace(fields[ColPctDown])
	longMAStr := strings.TrimSpace(fields[ColLongMA])
	icon := strings.TrimSpace(fields[ColIcon])

	if symbol == "" || priceStr == "" || pctDownStr == "" || longMAStr == "" || icon == "" {
		return CandidateRow{}, fmt.Errorf("%w: symbol/price/pct_down/long_ma/icon 均为必填", ErrMissingField)
	}

	if _, ok := IconMultiplier(icon); !ok {
		return CandidateRow{}, fmt.Errorf("%w: %q", ErrIconNotAllowed, icon)
	}

	price, priceOK := ParseFloat(priceStr)
	pctDown, pctDownOK := ParseFloat(pctDownStr)
	longMA, longMAOK := ParseFloat(longMAStr)
	if !priceOK || !pctDownOK || !longMAOK {
		return CandidateRow{}, fmt.Errorf("%w: price=%q pct_down=%q long_ma=%q", ErrInvalidNumber, priceStr, pctDownStr, longMAStr)
	}

	if price <= 0 {
		return CandidateRow{}, fmt.Errorf("%w: %v", ErrNonPositivePrice, price)
	}

	return CandidateRow{
		Symbol:    symbol,
		Price:     price,
		PctDown:   pctDown,
		LongMA:    longMA,
		Icon:      icon,
		Sentiment: fields[ColSentiment],
	}, nil
}
