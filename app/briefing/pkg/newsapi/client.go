package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
)

const defaultBaseURL = "https://newsapi.org/v2"

// removedTitle NewsAPI 对已下架文章返回的占位标题
const removedTitle = "[Removed]"

// Client NewsAPI 客户端
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient 创建一个新的 NewsAPI 客户端，timeout 为 0 时默认 10 秒
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// TopHeadlinesRequest /top-headlines 请求参数
type TopHeadlinesRequest struct {
	Category string
	Language string
	Country  string
	PageSize int
}

// EverythingRequest /everything 请求参数
type EverythingRequest struct {
	Query    string
	Language string
	SortBy   string // relevancy, popularity or publishedAt
	PageSize int
}

// Response NewsAPI 响应
type Response struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Article 单篇文章
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Source 文章来源
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Titles 返回可用的标题（去除空白与已下架占位），最多 limit 条
func (r *Response) Titles(limit int) []string {
	var titles []string
	for _, a := range r.Articles {
		if limit > 0 && len(titles) >= limit {
			break
		}
		title := strings.TrimSpace(a.Title)
		if title == "" || title == removedTitle {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

// TopHeadlines 获取头条新闻
func (c *Client) TopHeadlines(ctx context.Context, req TopHeadlinesRequest) (*Response, error) {
	q := url.Values{}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.Language != "" {
		q.Set("language", req.Language)
	}
	if req.Country != "" {
		q.Set("country", req.Country)
	}
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	return c.get(ctx, "/top-headlines", q)
}

// Everything 按关键词检索全部文章
func (c *Client) Everything(ctx context.Context, req EverythingRequest) (*Response, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	if req.Language != "" {
		q.Set("language", req.Language)
	}
	if req.SortBy == "" {
		req.SortBy = "publishedAt"
	}
	q.Set("sortBy", req.SortBy)
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	return c.get(ctx, "/everything", q)
}

// Search 实现 search.Searcher，使用 /everything 接口
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	resp, err := c.Everything(ctx, EverythingRequest{
		Query:    req.Query,
		Language: req.Language,
		PageSize: req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	var results []search.Result
	for _, a := range resp.Articles {
		results = append(results, search.Result{
			Title:         a.Title,
			URL:           a.URL,
			Content:       a.Description,
			PublishedDate: a.PublishedAt,
		})
	}
	return &search.Response{Results: results}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	// 密钥放在请求头里，传输错误的文本中只会出现不含密钥的 URL
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
		}
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	if res.StatusCode != http.StatusOK || resp.Status == "error" {
		return nil, fmt.Errorf("newsapi error (status %d, code %s): %s", res.StatusCode, resp.Code, resp.Message)
	}

	return &resp, nil
}
