package factory

import (
	"fmt"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/newsapi"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/searxng"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/tavily"
)

// NewSearcher 根据配置创建关键词搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	sc := cfg.News.Fallback.Search

	switch sc.Provider {
	case "", "newsapi":
		if cfg.News.APIKey == "" {
			return nil, fmt.Errorf("news api key is missing")
		}
		return newsapi.NewClient(cfg.News.BaseURL, cfg.News.APIKey, time.Duration(cfg.News.Timeout)*time.Second), nil

	case "tavily":
		if sc.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(sc.Tavily.APIKey), nil

	case "searxng":
		if sc.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(sc.SearXNG.BaseURL, sc.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", sc.Provider)
	}
}
