package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/newsapi"
)

type fakeSource struct {
	name      string
	headlines []string
	err       error
	calls     int
	lastLimit int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Headlines(_ context.Context, limit int) ([]string, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.headlines) > limit {
		return f.headlines[:limit], nil
	}
	return f.headlines, nil
}

func TestSingle_Fetch(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		src := &fakeSource{name: "de", headlines: []string{"A", "B"}}
		d := NewSingle(src, 10).Fetch(context.Background())
		assert.Equal(t, OutcomeOK, d.Outcome)
		assert.Equal(t, "A | B", d.Joined())
		assert.Equal(t, 10, src.lastLimit)
	})

	t.Run("empty", func(t *testing.T) {
		d := NewSingle(&fakeSource{name: "de"}, 10).Fetch(context.Background())
		assert.Equal(t, OutcomeEmpty, d.Outcome)
		assert.Equal(t, NoHeadlinesFound, d.Joined())
	})

	t.Run("failed", func(t *testing.T) {
		d := NewSingle(&fakeSource{name: "de", err: errors.New("timeout")}, 10).Fetch(context.Background())
		assert.Equal(t, OutcomeFailed, d.Outcome)
		assert.Equal(t, "error: timeout", d.Joined())
	})
}

func TestChain_Fetch(t *testing.T) {
	t.Run("secondary fills up primary", func(t *testing.T) {
		de := &fakeSource{name: "de", headlines: []string{"D1", "D2"}}
		en := &fakeSource{name: "en", headlines: []string{"E1", "E2", "E3", "E4", "E5", "E6"}}
		kw := &fakeSource{name: "kw", headlines: []string{"K1"}}

		d := NewChain(
			Step{Source: de, Limit: 5},
			Step{Source: en, Limit: 5, RunBelow: 3},
			Step{Source: kw, Limit: 10, RunBelow: 1},
		).Fetch(context.Background())

		require.Equal(t, OutcomeOK, d.Outcome)
		assert.Equal(t, []string{"D1", "D2", "E1", "E2", "E3", "E4", "E5"}, d.Headlines)
		assert.Equal(t, 0, kw.calls)
	})

	t.Run("enough primary skips the rest", func(t *testing.T) {
		de := &fakeSource{name: "de", headlines: []string{"D1", "D2", "D3"}}
		en := &fakeSource{name: "en", headlines: []string{"E1"}}

		d := NewChain(
			Step{Source: de, Limit: 5},
			Step{Source: en, Limit: 5, RunBelow: 3},
		).Fetch(context.Background())

		assert.Equal(t, []string{"D1", "D2", "D3"}, d.Headlines)
		assert.Equal(t, 0, en.calls)
	})

	t.Run("failing steps are skipped", func(t *testing.T) {
		de := &fakeSource{name: "de", err: errors.New("boom")}
		en := &fakeSource{name: "en", err: errors.New("boom")}
		kw := &fakeSource{name: "kw", headlines: []string{"K1", "K2"}}

		d := NewChain(
			Step{Source: de, Limit: 5},
			Step{Source: en, Limit: 5, RunBelow: 3},
			Step{Source: kw, Limit: 10, RunBelow: 1},
		).Fetch(context.Background())

		assert.Equal(t, OutcomeOK, d.Outcome)
		assert.Equal(t, "K1 | K2", d.Joined())
	})

	t.Run("all fail", func(t *testing.T) {
		d := NewChain(
			Step{Source: &fakeSource{name: "de", err: errors.New("a")}, Limit: 5},
			Step{Source: &fakeSource{name: "en", err: errors.New("b")}, Limit: 5, RunBelow: 3},
			Step{Source: &fakeSource{name: "kw"}, Limit: 10, RunBelow: 1},
		).Fetch(context.Background())

		assert.Equal(t, OutcomeEmpty, d.Outcome)
		assert.Equal(t, NoResults, d.Joined())
		require.Error(t, d.Err)
		assert.Contains(t, d.Err.Error(), "de: a")
	})
}

func TestNewFetcher(t *testing.T) {
	var (
		mu    sync.Mutex
		langs []string
	)
	seen := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), langs...)
	}
	reset := func() {
		mu.Lock()
		langs = nil
		mu.Unlock()
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/top-headlines":
			lang := r.URL.Query().Get("language")
			mu.Lock()
			langs = append(langs, lang)
			mu.Unlock()
			if lang == "de" {
				_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"DAX fester"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"Stocks rally"}]}`))
		default:
			_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
		}
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.News.BaseURL = srv.URL
	cfg.News.APIKey = "k"
	cfg.SetDefaults()

	t.Run("single", func(t *testing.T) {
		reset()
		f, err := NewFetcher(cfg)
		require.NoError(t, err)
		_, ok := f.(*Single)
		require.True(t, ok)
		assert.Equal(t, "DAX fester", f.Fetch(context.Background()).Joined())
	})

	t.Run("fallback", func(t *testing.T) {
		reset()
		c := *cfg
		c.News.Mode = "fallback"
		f, err := NewFetcher(&c)
		require.NoError(t, err)
		chain, ok := f.(*Chain)
		require.True(t, ok)
		assert.Len(t, chain.steps, 3)

		d := f.Fetch(context.Background())
		assert.Equal(t, "DAX fester | Stocks rally", d.Joined())
		assert.Equal(t, []string{"de", "en"}, seen())
	})

	t.Run("unknown mode", func(t *testing.T) {
		c := *cfg
		c.News.Mode = "rss"
		_, err := NewFetcher(&c)
		assert.Error(t, err)
	})
}

func TestSingle_FetchFailureHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := newsapi.NewClient(addr, "SECRET-KEY-123", time.Second)
	d := NewSingle(NewTopHeadlines(client, "business", "de"), 10).Fetch(context.Background())

	require.Equal(t, OutcomeFailed, d.Outcome)
	assert.Contains(t, d.Joined(), "error: ")
	assert.NotContains(t, d.Joined(), "SECRET-KEY-123")
}
