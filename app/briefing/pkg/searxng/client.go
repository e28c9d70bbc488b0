package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; aktien-briefing/1.0)"
)

// Client SearXNG 新闻搜索客户端，作为回退链最后一步的关键词来源
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient 创建客户端，timeout 单位为秒，0 使用默认值
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = defaultTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/search",
		client:   &http.Client{Timeout: t},
	}
}

var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Query   string       `json:"query"`
	Results []resultItem `json:"results"`
}

type resultItem struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

func (c *Client) buildURL(req *search.Request) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	if req.Topic == "general" {
		q.Set("categories", "general")
	} else {
		// 晨报只关心当天的新闻
		q.Set("categories", "news")
		q.Set("time_range", "day")
	}
	if req.Language != "" {
		q.Set("language", req.Language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search 执行搜索；同一链接只保留第一次出现的结果，空标题丢弃
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	// 部分实例会拦截没有 User-Agent 的请求
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	seen := make(map[string]struct{}, len(sr.Results))
	results := make([]search.Result, 0, len(sr.Results))
	for _, item := range sr.Results {
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		if item.URL != "" {
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
		}
		results = append(results, search.Result{
			Title:         title,
			URL:           item.URL,
			Content:       item.Content,
			Score:         item.Score,
			PublishedDate: item.PublishedDate,
		})
	}
	return &search.Response{Results: results}, nil
}
