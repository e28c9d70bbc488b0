package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/newsapi"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/searxng"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/tavily"
)

func TestNewSearcher(t *testing.T) {
	newCfg := func(mutate func(*config.Config)) *config.Config {
		cfg := &config.Config{}
		mutate(cfg)
		cfg.SetDefaults()
		return cfg
	}

	t.Run("defaults to newsapi everything", func(t *testing.T) {
		s, err := NewSearcher(newCfg(func(c *config.Config) { c.News.APIKey = "k" }))
		require.NoError(t, err)
		assert.IsType(t, &newsapi.Client{}, s)
	})

	t.Run("tavily", func(t *testing.T) {
		s, err := NewSearcher(newCfg(func(c *config.Config) {
			c.News.Fallback.Search.Provider = "tavily"
			c.News.Fallback.Search.Tavily.APIKey = "tvly"
		}))
		require.NoError(t, err)
		assert.IsType(t, &tavily.Client{}, s)
	})

	t.Run("searxng", func(t *testing.T) {
		s, err := NewSearcher(newCfg(func(c *config.Config) {
			c.News.Fallback.Search.Provider = "searxng"
			c.News.Fallback.Search.SearXNG.BaseURL = "http://localhost:8888"
		}))
		require.NoError(t, err)
		assert.IsType(t, &searxng.Client{}, s)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewSearcher(newCfg(func(c *config.Config) {}))
		assert.Error(t, err)

		_, err = NewSearcher(newCfg(func(c *config.Config) { c.News.Fallback.Search.Provider = "tavily" }))
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewSearcher(newCfg(func(c *config.Config) { c.News.Fallback.Search.Provider = "bing" }))
		assert.EqualError(t, err, "unknown search provider: bing")
	})
}
