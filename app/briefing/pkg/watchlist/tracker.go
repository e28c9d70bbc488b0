package watchlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
)

var (
	// ErrEmptyTicker 代码为空
	ErrEmptyTicker = errors.New("ticker is empty")
	// ErrNoQuote 查不到行情，未加入列表
	ErrNoQuote = errors.New("no quote available")
)

// Row 带当前表现的一行
type Row struct {
	Entry
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PercentChange decimal.Decimal `json:"percent_change"`
}

// Tracker 通过行情查询操作自选股列表
type Tracker struct {
	quotes quote.Lookuper
	now    func() time.Time
}

// NewTracker 创建 Tracker
func NewTracker(quotes quote.Lookuper) *Tracker {
	return &Tracker{quotes: quotes, now: time.Now}
}

// Normalize 去空白并转大写
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Add 以当前价格加入列表；查不到行情时不做任何修改
func (t *Tracker) Add(ctx context.Context, store *Store, ticker string) (*Entry, error) {
	ticker = Normalize(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	res := t.quotes.Lookup(ctx, ticker)
	if !res.OK() {
		logger.Log.Infof("自选股 [%s] 未加入: %s", ticker, res.Status)
		return nil, ErrNoQuote
	}

	entry := Entry{
		ID:         uuid.NewString(),
		Ticker:     ticker,
		Name:       res.Snapshot.Name,
		EntryPrice: res.Snapshot.Price,
		AddedAt:    t.now(),
	}
	store.append(entry)
	logger.Log.Infof("自选股 [%s] 已加入，买入价 %s", ticker, entry.EntryPrice.StringFixed(2))
	return &entry, nil
}

// ListWithPerformance 为每条重新查询行情；查不到的条目本次不展示，但仍保留在列表中
func (t *Tracker) ListWithPerformance(ctx context.Context, store *Store) []Row {
	return t.Rows(ctx, store.Entries())
}

// Rows 对给定的条目快照逐个查询行情，无行情的条目被省略
func (t *Tracker) Rows(ctx context.Context, entries []Entry) []Row {
	var rows []Row
	for _, e := range entries {
		res := t.quotes.Lookup(ctx, e.Ticker)
		if !res.OK() {
			continue
		}
		pct, ok := quote.PercentSince(e.EntryPrice, res.Snapshot.Price)
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Entry:         e,
			CurrentPrice:  res.Snapshot.Price,
			PercentChange: pct,
		})
	}
	return rows
}
