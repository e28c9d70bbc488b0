package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/engine"
	bLogger "github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/conf"
)

// NewBriefingConfig 将 internal/conf.Briefing 转换为 pkg/config.Config
func NewBriefingConfig(c *conf.Briefing, logger log.Logger) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{
				Provider: c.Llm.Provider,
				BaseURL:  c.Llm.BaseUrl,
				APIKey:   c.Llm.ApiKey,
				Model:    c.Llm.Model,
			}
		}
		if n := c.News; n != nil {
			cfg.News = config.NewsConfig{
				Mode:     n.Mode,
				APIKey:   n.ApiKey,
				BaseURL:  n.BaseUrl,
				Timeout:  int(n.Timeout),
				Category: n.Category,
				Language: n.Language,
				Limit:    int(n.Limit),
			}
			if fb := n.Fallback; fb != nil {
				cfg.News.Fallback = config.FallbackConfig{
					SecondaryLanguage: fb.SecondaryLanguage,
					PerSourceLimit:    int(fb.PerSourceLimit),
					MinPrimary:        int(fb.MinPrimary),
				}
				if sc := fb.Search; sc != nil {
					cfg.News.Fallback.Search = config.SearchConfig{
						Provider: sc.Provider,
						Query:    sc.Query,
						Limit:    int(sc.Limit),
					}
					if sc.Tavily != nil {
						cfg.News.Fallback.Search.Tavily.APIKey = sc.Tavily.ApiKey
					}
					if sc.Searxng != nil {
						cfg.News.Fallback.Search.SearXNG = config.SearXNGConfig{
							BaseURL: sc.Searxng.BaseUrl,
							Timeout: int(sc.Searxng.Timeout),
						}
					}
				}
			}
		}
		if c.Analysis != nil {
			cfg.Analysis.Style = c.Analysis.Style
		}
		if t := c.Tickers; t != nil {
			cfg.Tickers = config.TickerConfig{
				Mode:     t.Mode,
				Marker:   t.Marker,
				Stoplist: t.Stoplist,
				Limit:    int(t.Limit),
			}
		}
		if c.Quotes != nil {
			cfg.Quotes = config.QuoteConfig{BaseURL: c.Quotes.BaseUrl, Days: int(c.Quotes.Days)}
		}
		if c.Signals != nil {
			cfg.Signals = config.SignalConfig{
				JumpPercent:       c.Signals.JumpPercent,
				VolatilityPercent: c.Signals.VolatilityPercent,
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
	}
	cfg.ApplyEnv()
	cfg.SetDefaults()

	// 初始化日志
	if err := bLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init briefing logger: %v", err)
		_ = bLogger.InitLogger("info", "") // 降级处理
	}
	for _, key := range cfg.MissingSecrets() {
		log.NewHelper(logger).Warnf("missing secret: %s", key)
	}
	return cfg
}

// NewQuoteService 初始化行情服务
func NewQuoteService(cfg *config.Config) *quote.Service {
	return quote.NewService(quote.NewYahooClient(cfg.Quotes.BaseURL), cfg.Quotes.Days)
}

// NewTracker 初始化自选股操作
func NewTracker(quotes *quote.Service) *watchlist.Tracker {
	return watchlist.NewTracker(quotes)
}

// NewBriefingEngine 初始化晨报引擎
func NewBriefingEngine(cfg *config.Config, quotes *quote.Service, logger log.Logger) (*engine.Engine, func(), error) {
	eng, err := engine.NewEngine(context.Background(), cfg, quotes)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up briefing engine")
	}
	return eng, cleanup, nil
}
