package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

// ErrMissingAPIKey 未配置模型密钥
var ErrMissingAPIKey = errors.New("llm api key is missing")

// ErrEmptyReply 模型没有返回任何文本
var ErrEmptyReply = errors.New("llm returned an empty reply")

// Completer 单轮补全：一条系统消息加一条用户消息，返回一段文本
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// New 根据 provider 创建补全实例
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(ctx, cfg)
	case "anthropic":
		return NewAnthropicProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
