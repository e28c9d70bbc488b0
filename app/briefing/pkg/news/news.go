package news

import (
	"context"
	"strings"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/newsapi"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search"
)

// Separator 拼接标题时使用的分隔符
const Separator = " | "

const (
	// NoHeadlinesFound 单源模式下未取到任何标题时的占位文本
	NoHeadlinesFound = "no headlines found"
	// NoResults 回退链全部失败时的占位文本
	NoResults = "no results"
)

// Source 标题来源
type Source interface {
	Name() string
	Headlines(ctx context.Context, limit int) ([]string, error)
}

// Fetcher 获取一次新闻摘要
type Fetcher interface {
	Fetch(ctx context.Context) *Digest
}

// Outcome 抓取结果类型
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Digest 一次抓取得到的标题集合
type Digest struct {
	Headlines []string
	Outcome   Outcome
	Err       error

	emptyText string
}

// Joined 返回用于提示词的单行文本，空结果或失败时返回占位文本
func (d *Digest) Joined() string {
	switch d.Outcome {
	case OutcomeOK:
		return strings.Join(d.Headlines, Separator)
	case OutcomeFailed:
		return "error: " + d.Err.Error()
	default:
		return d.emptyText
	}
}

// TopHeadlines NewsAPI 分类头条来源
type TopHeadlines struct {
	client   *newsapi.Client
	category string
	language string
}

// NewTopHeadlines 创建头条来源
func NewTopHeadlines(client *newsapi.Client, category, language string) *TopHeadlines {
	return &TopHeadlines{client: client, category: category, language: language}
}

// Name 来源名称
func (s *TopHeadlines) Name() string {
	return "top-headlines/" + s.category + "/" + s.language
}

// Headlines 获取头条标题
func (s *TopHeadlines) Headlines(ctx context.Context, limit int) ([]string, error) {
	resp, err := s.client.TopHeadlines(ctx, newsapi.TopHeadlinesRequest{
		Category: s.category,
		Language: s.language,
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	return resp.Titles(limit), nil
}

// Keyword 基于关键词搜索的来源
type Keyword struct {
	searcher search.Searcher
	query    string
	language string
}

// NewKeyword 创建关键词来源，language 为空表示不限语言
func NewKeyword(searcher search.Searcher, query, language string) *Keyword {
	return &Keyword{searcher: searcher, query: query, language: language}
}

// Name 来源名称
func (s *Keyword) Name() string {
	return "search/" + s.query
}

// Headlines 搜索并返回标题
func (s *Keyword) Headlines(ctx context.Context, limit int) ([]string, error) {
	resp, err := s.searcher.Search(ctx, &search.Request{
		Query:      s.query,
		Topic:      "news",
		Language:   s.language,
		MaxResults: limit,
	})
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, title := range resp.Titles(0) {
		if limit > 0 && len(titles) >= limit {
			break
		}
		if title = strings.TrimSpace(title); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}
