package search

import "context"

// Searcher 定义通用的关键词新闻搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	Language   string // ISO 639-1, 为空表示不限
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Titles 返回非空标题，最多 limit 条（limit <= 0 表示不限）
func (r *Response) Titles(limit int) []string {
	if r == nil {
		return nil
	}
	var titles []string
	for _, res := range r.Results {
		if limit > 0 && len(titles) >= limit {
			break
		}
		if res.Title == "" {
			continue
		}
		titles = append(titles, res.Title)
	}
	return titles
}
