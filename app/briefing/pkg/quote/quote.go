package quote

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// Status 查询结果类型
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusNetworkError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	default:
		return "network_error"
	}
}

// Snapshot 由最近两个交易日计算出的行情快照
type Snapshot struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Volatility    decimal.Decimal `json:"volatility"`
	AsOf          time.Time       `json:"as_of"`
}

// Result 查询结果，只有 StatusOK 时 Snapshot 非空
type Result struct {
	Status   Status
	Snapshot *Snapshot
	Err      error
}

// OK 是否拿到了行情
func (r Result) OK() bool {
	return r.Status == StatusOK && r.Snapshot != nil
}

// Lookuper 单个代码的行情查询
type Lookuper interface {
	Lookup(ctx context.Context, symbol string) Result
}

// Service 行情查询服务
type Service struct {
	provider Provider
	days     int
}

// Ensure Service implements Lookuper
var _ Lookuper = (*Service)(nil)

// NewService 创建行情服务，days 为计算窗口的交易日数
func NewService(provider Provider, days int) *Service {
	if days <= 0 {
		days = 2
	}
	return &Service{provider: provider, days: days}
}

// Lookup 查询并计算快照，任何失败都以无数据返回
func (s *Service) Lookup(ctx context.Context, symbol string) Result {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Result{Status: StatusEmpty}
	}

	series, err := s.provider.DailyBars(ctx, symbol, s.days)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			logger.Log.Infof("代码 [%s] 无行情数据", symbol)
			return Result{Status: StatusEmpty, Err: err}
		}
		logger.Log.Warnf("查询行情失败 [%s]: %v", symbol, err)
		return Result{Status: StatusNetworkError, Err: err}
	}

	snap, ok := Compute(series)
	if !ok {
		logger.Log.Infof("代码 [%s] 行情窗口为空或收盘价为零", symbol)
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusOK, Snapshot: snap}
}

// Compute 由日线计算价格、涨跌幅和振幅
func Compute(series *Series) (*Snapshot, bool) {
	if series == nil || len(series.Bars) == 0 {
		return nil, false
	}

	first := series.Bars[0]
	last := series.Bars[len(series.Bars)-1]
	if first.Close.IsZero() || last.Close.IsZero() {
		return nil, false
	}

	// 最高价或最低价缺失时不计振幅
	volatility := decimal.Zero
	if last.HasRange && !last.High.LessThan(last.Low) {
		volatility = last.High.Sub(last.Low).Div(last.Close).Mul(hundred)
	}

	return &Snapshot{
		Symbol:        series.Symbol,
		Name:          series.Name,
		Currency:      series.Currency,
		Price:         last.Close,
		PercentChange: last.Close.Sub(first.Close).Div(first.Close).Mul(hundred),
		Volatility:    volatility,
		AsOf:          last.Time,
	}, true
}

// PercentSince 相对 base 的百分比变化，base 为零时返回 false
func PercentSince(base, current decimal.Decimal) (decimal.Decimal, bool) {
	if base.IsZero() {
		return decimal.Zero, false
	}
	return current.Sub(base).Div(base).Mul(hundred), true
}
