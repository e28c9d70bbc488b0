package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData 行情接口没有返回可用数据
var ErrNoData = errors.New("no chart data")

// ChartResponse Yahoo chart 接口响应
type ChartResponse struct {
	Chart ChartData `json:"chart"`
}

// ChartData chart 主体
type ChartData struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

// ChartError 接口错误
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult 单个品种的数据
type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// ChartMeta 品种元信息
type ChartMeta struct {
	Symbol    string `json:"symbol"`
	Currency  string `json:"currency"`
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
}

// Indicators 指标集合
type Indicators struct {
	Quote []OHLC `json:"quote"`
}

// OHLC 停牌或未收盘的位置为 null
type OHLC struct {
	Open  []*float64 `json:"open"`
	High  []*float64 `json:"high"`
	Low   []*float64 `json:"low"`
	Close []*float64 `json:"close"`
}

// Bar 一根日线
type Bar struct {
	Time  time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
	// HasRange 当日最高价和最低价都有值
	HasRange bool
}

// Series 某个品种最近的日线
type Series struct {
	Symbol   string
	Name     string
	Currency string
	Bars     []Bar
}

// Provider 日线数据来源
type Provider interface {
	DailyBars(ctx context.Context, symbol string, days int) (*Series, error)
}

// YahooClient Yahoo Finance chart 客户端
type YahooClient struct {
	baseURL string
	client  *http.Client
}

// Ensure YahooClient implements Provider
var _ Provider = (*YahooClient)(nil)

// NewYahooClient 创建客户端，请求时长由调用方的 context 控制
func NewYahooClient(baseURL string) *YahooClient {
	return &YahooClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// DailyBars 拉取最近 5 个交易日，保留最后 days 根有收盘价的日线
func (c *YahooClient) DailyBars(ctx context.Context, symbol string, days int) (*Series, error) {
	q := url.Values{}
	q.Set("range", "5d")
	q.Set("interval", "1d")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	// 没有 User-Agent 时接口经常直接返回 429
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	var chart ChartResponse
	if err := json.Unmarshal(raw, &chart); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo api error (status %d)", res.StatusCode)
		}
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	// 未知代码返回 404 且带 error 字段，视为无数据
	if chart.Chart.Error != nil {
		if res.StatusCode == http.StatusNotFound || chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
		}
		return nil, fmt.Errorf("yahoo api error (status %d): %s", res.StatusCode, chart.Chart.Error.Description)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo api error (status %d)", res.StatusCode)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	result := chart.Chart.Result[0]
	series := &Series{
		Symbol:   symbol,
		Name:     firstNonEmpty(result.Meta.LongName, result.Meta.ShortName),
		Currency: result.Meta.Currency,
		Bars:     toBars(result),
	}
	if days > 0 && len(series.Bars) > days {
		series.Bars = series.Bars[len(series.Bars)-days:]
	}
	return series, nil
}

func toBars(r ChartResult) []Bar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]

	var bars []Bar
	for i, ts := range r.Timestamp {
		cl := at(q.Close, i)
		if cl == nil {
			continue
		}
		hi, lo := at(q.High, i), at(q.Low, i)
		bars = append(bars, Bar{
			Time:     time.Unix(ts, 0).UTC(),
			Open:     value(at(q.Open, i)),
			High:     value(hi),
			Low:      value(lo),
			Close:    decimal.NewFromFloat(*cl),
			HasRange: hi != nil && lo != nil,
		})
	}
	return bars
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func value(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
