package allocation

import "context"

// OrderPlacer 抽象市价买单的提交，真实实现为交易所客户端，
// 模拟实现用于 dry-run。提交是同步阻塞的，引擎同一时刻只有一笔在途订单。
type OrderPlacer interface {
	PlaceMarketBuy(ctx context.Context, marketSymbol string, amount float64) (string, error)
}

// Params 为分配引擎的显式配置，随入口传入而非环境态。
type Params struct {
	BaseCurrency string
	MinNotional  float64
}

// OutcomeStatus 表示单行的最终处置。
type OutcomeStatus string

const (
	OutcomePlaced  OutcomeStatus = "placed"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome 记录一行的处理轨迹。每行至多一条，按扫描顺序排列。
type Outcome struct {
	Row          int
	Symbol       string
	Status       OutcomeStatus
	Reason       string
	MarketSymbol string
	Notional     float64
	Amount       float64
	OrderID      string
}

// PlacedOrder 描述一笔已确认成交提交的订单。
type PlacedOrder struct {
	Row          int
	Symbol       string
	MarketSymbol string
	Notional     float64
	Amount       float64
	OrderID      string
}

// Report 为一次完整扫描的结果。
type Report struct {
	Outcomes       []Outcome
	Placed         []PlacedOrder
	StartingFunds  float64
	RemainingFunds float64
	// Exhausted 表示扫描因资金耗尽而提前终止，属正常结束而非错误。
	Exhausted bool
}
