package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
)

func TestClient_TopHeadlines(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":3,"articles":[
			{"title":"DAX schließt im Plus"},
			{"title":"[Removed]"},
			{"title":"  Rheinmetall hebt Prognose an  "}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	resp, err := c.TopHeadlines(context.Background(), TopHeadlinesRequest{Category: "business", Language: "de", PageSize: 5})
	require.NoError(t, err)

	assert.Equal(t, "/top-headlines", got.URL.Path)
	assert.Equal(t, "business", got.URL.Query().Get("category"))
	assert.Equal(t, "de", got.URL.Query().Get("language"))
	assert.Equal(t, "5", got.URL.Query().Get("pageSize"))
	assert.Equal(t, "secret", got.Header.Get("X-Api-Key"))
	assert.Empty(t, got.URL.Query().Get("apiKey"))

	assert.Equal(t, []string{"DAX schließt im Plus", "Rheinmetall hebt Prognose an"}, resp.Titles(10))
	assert.Equal(t, []string{"DAX schließt im Plus"}, resp.Titles(1))
}

func TestClient_Errors(t *testing.T) {
	t.Run("api error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "bad", time.Second).TopHeadlines(context.Background(), TopHeadlinesRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apiKeyInvalid")
	})

	t.Run("non json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k", time.Second).TopHeadlines(context.Background(), TopHeadlinesRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k", 20*time.Millisecond).TopHeadlines(context.Background(), TopHeadlinesRequest{})
		assert.Error(t, err)
	})
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "Börse", r.URL.Query().Get("q"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"Anleger warten auf die Fed","url":"https://example.com/a"}]}`))
	}))
	defer srv.Close()

	var s search.Searcher = NewClient(srv.URL, "k", time.Second)
	resp, err := s.Search(context.Background(), &search.Request{Query: "Börse", MaxResults: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anleger warten auf die Fed"}, resp.Titles(0))
}
