package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/llm"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/ticker"
)

// Style 提示词风格
type Style string

const (
	StyleStructured   Style = "structured"
	StyleUnstructured Style = "unstructured"
)

// Placeholder 结构化字段缺失时的占位
const Placeholder = "N/A"

// 结构化回复中的行标记
const (
	MarkerMarket    = "MARKT:"
	MarkerTickers   = "TICKER:"
	MarkerRationale = "BEGRÜNDUNG:"
)

// Kind 分析结果类型
type Kind int

const (
	KindStructured Kind = iota
	KindUnstructured
	KindParseFailed
)

// MarshalText 序列化为名称
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindUnstructured:
		return "unstructured"
	default:
		return "parse_failed"
	}
}

// Analysis 模型回复及其解析结果
type Analysis struct {
	Kind Kind   `json:"kind"`
	Raw  string `json:"raw"`

	// 仅 KindStructured 时有意义
	Market    string `json:"market,omitempty"`
	Tickers   string `json:"tickers,omitempty"`
	Rationale string `json:"rationale,omitempty"`
}

// Analyzer 叙事分析器
type Analyzer struct {
	completer llm.Completer
	style     Style
}

// New 创建分析器，未知风格按 structured 处理
func New(completer llm.Completer, style string) *Analyzer {
	s := Style(style)
	if s != StyleUnstructured {
		s = StyleStructured
	}
	return &Analyzer{completer: completer, style: s}
}

// Style 当前提示词风格
func (a *Analyzer) Style() Style {
	return a.style
}

// Analyze 提交一次补全请求并解析回复
func (a *Analyzer) Analyze(ctx context.Context, headlines string) (*Analysis, error) {
	system, user := BuildPrompt(headlines, a.style)

	logger.Log.Infof("请求模型分析，风格: %s", a.style)
	raw, err := a.completer.Complete(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	analysis := Parse(raw, a.style)
	if analysis.Kind == KindParseFailed {
		logger.Log.Warnf("模型回复不含任何标记，按原文展示")
	}
	return analysis, nil
}

// Parse 按风格解析模型回复
func Parse(raw string, style Style) *Analysis {
	if style == StyleUnstructured {
		return &Analysis{Kind: KindUnstructured, Raw: raw}
	}

	fields := map[string][]string{}
	current := ""
	for _, line := range strings.Split(raw, "\n") {
		if marker, rest, ok := cutMarker(line); ok {
			current = marker
			fields[marker] = append(fields[marker], rest)
			continue
		}
		// 标记后的续行归入上一个字段
		if current != "" && strings.TrimSpace(line) != "" {
			fields[current] = append(fields[current], strings.TrimSpace(line))
		}
	}

	if len(fields) == 0 {
		return &Analysis{Kind: KindParseFailed, Raw: raw}
	}

	return &Analysis{
		Kind:      KindStructured,
		Raw:       raw,
		Market:    join(fields[MarkerMarket]),
		Tickers:   join(fields[MarkerTickers]),
		Rationale: join(fields[MarkerRationale]),
	}
}

// cutMarker 一行含多个标记时取最靠前的那个
func cutMarker(line string) (string, string, bool) {
	best, pos := "", -1
	for _, m := range []string{MarkerMarket, MarkerTickers, MarkerRationale} {
		if idx := ticker.IndexMarker(line, m); idx >= 0 && (pos < 0 || idx < pos) {
			best, pos = m, idx
		}
	}
	if pos < 0 {
		return "", "", false
	}
	rest, _ := ticker.CutMarker(line[pos:], best)
	return best, rest, true
}

func join(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return Placeholder
	}
	return strings.Join(kept, "\n")
}
