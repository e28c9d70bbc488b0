package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/newsapi"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/search/factory"
)

// Single 单源抓取
type Single struct {
	source Source
	limit  int
}

// NewSingle 创建单源抓取器
func NewSingle(source Source, limit int) *Single {
	return &Single{source: source, limit: limit}
}

// Fetch 请求一次，失败时把错误带回给调用方
func (f *Single) Fetch(ctx context.Context) *Digest {
	headlines, err := f.source.Headlines(ctx, f.limit)
	if err != nil {
		logger.Log.Errorf("获取新闻失败 [%s]: %v", f.source.Name(), err)
		return &Digest{Outcome: OutcomeFailed, Err: err, emptyText: NoHeadlinesFound}
	}
	if len(headlines) == 0 {
		logger.Log.Warnf("新闻源 [%s] 未返回任何标题", f.source.Name())
		return &Digest{Outcome: OutcomeEmpty, emptyText: NoHeadlinesFound}
	}
	return &Digest{Headlines: headlines, Outcome: OutcomeOK}
}

// Step 回退链中的一步
type Step struct {
	Source Source
	Limit  int
	// RunBelow 已收集的标题数低于该值时才执行；0 表示总是执行
	RunBelow int
}

// Chain 多级回退抓取，每一步独立容错
type Chain struct {
	steps []Step
}

// NewChain 创建回退链
func NewChain(steps ...Step) *Chain {
	return &Chain{steps: steps}
}

// Fetch 依次执行各步骤，按步骤顺序拼接结果
func (c *Chain) Fetch(ctx context.Context) *Digest {
	var collected []string
	var errs []error

	for _, step := range c.steps {
		if step.RunBelow > 0 && len(collected) >= step.RunBelow {
			continue
		}
		headlines, err := step.Source.Headlines(ctx, step.Limit)
		if err != nil {
			logger.Log.Warnf("回退步骤失败 [%s]: %v", step.Source.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", step.Source.Name(), err))
			continue
		}
		logger.Log.Debugf("回退步骤 [%s] 返回 %d 条标题", step.Source.Name(), len(headlines))
		collected = append(collected, headlines...)
	}

	if len(collected) == 0 {
		return &Digest{Outcome: OutcomeEmpty, Err: errors.Join(errs...), emptyText: NoResults}
	}
	return &Digest{Headlines: collected, Outcome: OutcomeOK}
}

// NewFetcher 根据配置创建抓取器
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	nc := cfg.News
	client := newsapi.NewClient(nc.BaseURL, nc.APIKey, time.Duration(nc.Timeout)*time.Second)

	switch nc.Mode {
	case "", "single":
		return NewSingle(NewTopHeadlines(client, nc.Category, nc.Language), nc.Limit), nil

	case "fallback":
		fb := nc.Fallback
		steps := []Step{
			{Source: NewTopHeadlines(client, nc.Category, nc.Language), Limit: fb.PerSourceLimit},
			{Source: NewTopHeadlines(client, nc.Category, fb.SecondaryLanguage), Limit: fb.PerSourceLimit, RunBelow: fb.MinPrimary},
		}
		searcher, err := factory.NewSearcher(cfg)
		if err != nil {
			logger.Log.Warnf("关键词搜索不可用，回退链省略最后一步: %v", err)
		} else {
			steps = append(steps, Step{Source: NewKeyword(searcher, fb.Search.Query, ""), Limit: fb.Search.Limit, RunBelow: 1})
		}
		return NewChain(steps...), nil

	default:
		return nil, fmt.Errorf("unknown news mode: %s", nc.Mode)
	}
}
