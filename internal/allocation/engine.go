package allocation

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tier-trader/internal/screener"
)

// Engine 以贪心单遍扫描将候选行转化为市价买单。
// 资金是唯一共享池，排在前面的行优先占用当时的全部剩余额度，
// 因此输出依赖输入顺序，这是刻意设计。
type Engine struct {
	placer OrderPlacer
	params Params
	logger *zap.Logger
}

// NewEngine 创建分配引擎。
func NewEngine(placer OrderPlacer, params Params, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		placer: placer,
		params: params,
		logger: logger,
	}
}

// Run 执行一次完整的分配扫描。rows 为去掉表头后的原始行，
// 行号从 2 起计以对应工作表实际行。扫描严格顺序、单遍、无回看；
// 行级故障只跳过当前行，资金仅在订单确认成功后扣减。
func (e *Engine) Run(ctx context.Context, rows [][]string, funds float64) Report {
	report := Report{
		Outcomes:       make([]Outcome, 0, len(rows)),
		Placed:         make([]PlacedOrder, 0),
		StartingFunds:  funds,
		RemainingFunds: funds,
	}

	remaining := funds

	for i, fields := range rows {
		rowNum := i + 2

		// 资金耗尽则整体终止，后续行不再进入校验。
		if remaining <= 0 {
			e.logger.Info("剩余资金耗尽，提前结束扫描",
				zap.Int("next_row", rowNum),
				zap.Float64("remaining_funds", remaining),
			)
			report.Exhausted = true
			break
		}

		row, err := screener.ParseRow(fields)
		if err != nil {
			report.Outcomes = append(report.Outcomes, e.skip(rowNum, symbolHint(fields), err.Error()))
			continue
		}

		tier, ok := ClassifyTier(row.PctDown)
		if !ok {
			report.Outcomes = append(report.Outcomes, e.skip(rowNum, row.Symbol,
				"跌幅 "+formatFloat(row.PctDown)+" 不在任何档位内"))
			continue
		}

		mult, err := Compose(row.Icon, row.Price, row.LongMA, row.Sentiment)
		if err != nil {
			report.Outcomes = append(report.Outcomes, e.skip(rowNum, row.Symbol, err.Error()))
			continue
		}

		baseNotional := remaining * float64(tier)
		orderNotional := baseNotional * mult.Product()

		// 硬上限：无论乘积多大都不超过当前剩余资金。
		if orderNotional > remaining {
			orderNotional = remaining
		}

		if orderNotional < e.params.MinNotional {
			report.Outcomes = append(report.Outcomes, e.skip(rowNum, row.Symbol,
				"订单名义金额 "+formatFloat(orderNotional)+" 低于最小下单额 "+formatFloat(e.params.MinNotional)))
			continue
		}

		amount := orderNotional / row.Price
		marketSymbol := row.Symbol + "/" + e.params.BaseCurrency

		e.logger.Info("候选行定价完成",
			zap.Int("row", rowNum),
			zap.String("symbol", row.Symbol),
			zap.Float64("price", row.Price),
			zap.Float64("pct_down", row.PctDown),
			zap.Float64("tier_fraction", float64(tier)),
			zap.String("icon", row.Icon),
			zap.Float64("icon_mult", mult.IconMult),
			zap.Float64("ma_ratio", mult.MARatio),
			zap.Float64("sentiment_mult", mult.SentimentMult),
			zap.Float64("order_notional", orderNotional),
			zap.Float64("amount", amount),
			zap.String("market_symbol", marketSymbol),
		)

		orderID, err := e.placer.PlaceMarketBuy(ctx, marketSymbol, amount)
		if err != nil {
			// 下单失败不扣减资金，扫描继续。
			e.logger.Warn("下单失败，跳过该行",
				zap.Int("row", rowNum),
				zap.String("market_symbol", marketSymbol),
				zap.Error(err),
			)
			report.Outcomes = append(report.Outcomes, Outcome{
				Row:          rowNum,
				Symbol:       row.Symbol,
				Status:       OutcomeFailed,
				Reason:       err.Error(),
				MarketSymbol: marketSymbol,
				Notional:     orderNotional,
				Amount:       amount,
			})
			continue
		}

		remaining -= orderNotional
		placed := PlacedOrder{
			Row:          rowNum,
			Symbol:       row.Symbol,
			MarketSymbol: marketSymbol,
			Notional:     orderNotional,
			Amount:       amount,
			OrderID:      orderID,
		}
		report.Placed = append(report.Placed, placed)
		report.Outcomes = append(report.Outcomes, Outcome{
			Row:          rowNum,
			Symbol:       row.Symbol,
			Status:       OutcomePlaced,
			MarketSymbol: marketSymbol,
			Notional:     orderNotional,
			Amount:       amount,
			OrderID:      orderID,
		})

		e.logger.Info("订单已提交",
			zap.Int("row", rowNum),
			zap.String("market_symbol", marketSymbol),
			zap.String("order_id", orderID),
			zap.Float64("notional", orderNotional),
			zap.Float64("remaining_funds", remaining),
		)
	}

	report.RemainingFunds = remaining
	return report
}

func (e *Engine) skip(row int, symbol, reason string) Outcome {
	e.logger.Info("跳过候选行",
		zap.Int("row", row),
		zap.String("symbol", symbol),
		zap.String("reason", reason),
	)
	return Outcome{
		Row:    row,
		Symbol: symbol,
		Status: OutcomeSkipped,
		Reason: reason,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// symbolHint 在行未通过校验时尽力提取符号用于日志追踪。
func symbolHint(fields []string) string {
	if len(fields) <= screener.ColSymbol {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(fields[screener.ColSymbol]))
}
