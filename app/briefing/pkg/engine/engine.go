package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/analyzer"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/llm"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/model"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/news"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/ticker"
)

// Components 引擎依赖，Analyzer 为空表示模型不可用
type Components struct {
	Fetcher    news.Fetcher
	Analyzer   *analyzer.Analyzer
	Extractor  ticker.Extractor
	Quotes     quote.Lookuper
	Thresholds quote.Thresholds
	// Missing 缺失的密钥名称
	Missing []string
}

// Engine 晨报生成引擎
type Engine struct {
	c   Components
	now func() time.Time
}

// NewEngine 根据配置创建引擎；缺少密钥不算错误，运行时以提示条形式展示
func NewEngine(ctx context.Context, cfg *config.Config, quotes quote.Lookuper) (*Engine, error) {
	fetcher, err := news.NewFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("新闻源初始化失败: %w", err)
	}

	var az *analyzer.Analyzer
	completer, err := llm.New(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Log.Warnf("未配置模型密钥，分析步骤将被跳过")
	case err != nil:
		return nil, err
	default:
		az = analyzer.New(completer, cfg.Analysis.Style)
	}

	return New(Components{
		Fetcher:    fetcher,
		Analyzer:   az,
		Extractor:  ticker.New(cfg.Tickers),
		Quotes:     quotes,
		Thresholds: quote.ThresholdsFromConfig(cfg.Signals),
		Missing:    cfg.MissingSecrets(),
	}), nil
}

// New 使用现成的组件创建引擎
func New(c Components) *Engine {
	return &Engine{c: c, now: time.Now}
}

// RunOptions 运行选项
type RunOptions struct {
	ProgressCallback func(status string, progress int)
}

// Run 依次执行抓取、分析、提取和行情查询；任何一步失败都只降级为提示
func (e *Engine) Run(ctx context.Context, opts RunOptions) *model.Briefing {
	progress := func(status string, p int) {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(status, p)
		}
	}

	b := &model.Briefing{Date: e.now()}
	for _, key := range e.c.Missing {
		b.AddBanner(fmt.Sprintf("Konfiguration unvollständig: %s fehlt.", key))
	}

	// 1. 新闻
	progress("fetching news", 10)
	newsText := news.NoHeadlinesFound
	if slices.Contains(e.c.Missing, "NEWS_API_KEY") {
		b.NewsNotice = "Keine Schlagzeilen: NEWS_API_KEY fehlt."
	} else {
		digest := e.c.Fetcher.Fetch(ctx)
		newsText = digest.Joined()
		if digest.Outcome == news.OutcomeOK {
			b.Headlines = digest.Headlines
		} else {
			b.NewsNotice = newsText
		}
		logger.Log.Infof("新闻抓取完成: %s，共 %d 条", digest.Outcome, len(digest.Headlines))
	}

	// 2. 分析
	progress("analyzing", 40)
	if e.c.Analyzer == nil {
		b.AnalysisErr = "Analyse übersprungen: kein Sprachmodell konfiguriert."
		progress("completed", 100)
		return b
	}
	analysis, err := e.c.Analyzer.Analyze(ctx, newsText)
	if err != nil {
		logger.Log.Errorf("模型分析失败: %v", err)
		b.AnalysisErr = fmt.Sprintf("Analyse fehlgeschlagen: %v", err)
		progress("completed", 100)
		return b
	}
	b.Analysis = analysis

	// 3. 提取代码
	progress("extracting tickers", 70)
	// 结构化回复以解析结果为准，保证页面展示的代码就是查询行情的代码
	if analysis.Kind == analyzer.KindStructured {
		b.Tickers = ticker.SplitList(analysis.Tickers)
	} else {
		b.Tickers = e.c.Extractor.Extract(analysis.Raw)
	}
	logger.Log.Infof("提取到 %d 个代码: %v", len(b.Tickers), b.Tickers)

	// 4. 行情
	for i, symbol := range b.Tickers {
		res := e.c.Quotes.Lookup(ctx, symbol)
		pick := model.Pick{Ticker: symbol}
		if res.OK() {
			pick.Snapshot = res.Snapshot
			pick.Signal = e.c.Thresholds.Classify(res.Snapshot)
		}
		b.Picks = append(b.Picks, pick)
		progress(fmt.Sprintf("quoted %s", symbol), 70+int(float64(i+1)/float64(len(b.Tickers))*25))
	}

	progress("completed", 100)
	return b
}
