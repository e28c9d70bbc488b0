package model

import (
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/analyzer"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
)

// Pick 模型推荐的单只股票及其行情
type Pick struct {
	Ticker   string          `json:"ticker"`
	Snapshot *quote.Snapshot `json:"snapshot,omitempty"` // 查不到行情时为空
	Signal   quote.Signal    `json:"signal,omitempty"`
}

// Label 信号文字，无行情时为空
func (p Pick) Label() string {
	if p.Snapshot == nil {
		return ""
	}
	return p.Signal.Label()
}

// Briefing 一次完整的晨报
type Briefing struct {
	Date        time.Time          `json:"date"`
	Headlines   []string           `json:"headlines"`
	NewsNotice  string             `json:"news_notice,omitempty"` // 没有标题时的占位或错误文本
	Analysis    *analyzer.Analysis `json:"analysis,omitempty"`
	AnalysisErr string             `json:"analysis_error,omitempty"`
	Tickers     []string           `json:"tickers"`
	Picks       []Pick             `json:"picks"`
	Banners     []string           `json:"banners,omitempty"`
}

// AddBanner 追加一条页面提示
func (b *Briefing) AddBanner(msg string) {
	b.Banners = append(b.Banners, msg)
}
