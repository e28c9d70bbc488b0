package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

// OpenAIProvider 基于 eino OpenAI ChatModel 的实现
type OpenAIProvider struct {
	chatModel model.BaseChatModel
}

// NewOpenAIProvider 初始化 OpenAI ChatModel
func NewOpenAIProvider(ctx context.Context, cfg config.LLMConfig) (*OpenAIProvider, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAIProvider{chatModel: chatModel}, nil
}

// NewOpenAIProviderWithModel 使用已有的 ChatModel
func NewOpenAIProviderWithModel(cm model.BaseChatModel) *OpenAIProvider {
	return &OpenAIProvider{chatModel: cm}
}

// Complete 调用一次 Generate
func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	resp, err := p.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyReply
	}
	return resp.Content, nil
}
