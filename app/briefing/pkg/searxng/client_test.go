package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "news", r.URL.Query().Get("categories"))
		assert.Equal(t, "day", r.URL.Query().Get("time_range"))
		assert.Equal(t, "de", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"query":"Aktien","results":[
			{"title":" Erste ","url":"https://a"},
			{"title":"Erste (Kopie)","url":"https://a"},
			{"title":"","url":"https://x"},
			{"title":"Zweite","url":"https://b"},
			{"title":"Dritte","url":"https://c"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 1)
	resp, err := c.Search(context.Background(), &search.Request{Query: "Aktien", Language: "de", MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Erste", "Zweite"}, resp.Titles(0))
}

func TestClient_SearchGeneralTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "general", r.URL.Query().Get("categories"))
		assert.Empty(t, r.URL.Query().Get("time_range"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, 0).Search(context.Background(), &search.Request{Query: "x", Topic: "general"})
	require.NoError(t, err)
	assert.Empty(t, resp.Titles(0))
}

func TestClient_SearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).Search(context.Background(), &search.Request{Query: "x"})
	assert.ErrorContains(t, err, "status 403")
}
