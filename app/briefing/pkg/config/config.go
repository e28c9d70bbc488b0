package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
)

// Config 项目配置结构体
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	News     NewsConfig     `yaml:"news"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Tickers  TickerConfig   `yaml:"tickers"`
	Quotes   QuoteConfig    `yaml:"quotes"`
	Signals  SignalConfig   `yaml:"signals"`
	Log      LogConfig      `yaml:"log"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai or anthropic
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// NewsConfig 新闻源配置
type NewsConfig struct {
	Mode     string         `yaml:"mode"` // single or fallback
	APIKey   string         `yaml:"api_key"`
	BaseURL  string         `yaml:"base_url"`
	Timeout  int            `yaml:"timeout"` // 秒
	Category string         `yaml:"category"`
	Language string         `yaml:"language"`
	Limit    int            `yaml:"limit"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// FallbackConfig 多级回退链配置
type FallbackConfig struct {
	SecondaryLanguage string       `yaml:"secondary_language"`
	PerSourceLimit    int          `yaml:"per_source_limit"`
	MinPrimary        int          `yaml:"min_primary"`
	Search            SearchConfig `yaml:"search"`
}

// SearchConfig 关键词搜索配置（回退链最后一步）
type SearchConfig struct {
	Provider string        `yaml:"provider"` // newsapi, tavily or searxng
	Query    string        `yaml:"query"`
	Limit    int           `yaml:"limit"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// AnalysisConfig 分析提示词配置
type AnalysisConfig struct {
	Style string `yaml:"style"` // structured or unstructured
}

// TickerConfig 股票代码提取配置
type TickerConfig struct {
	Mode     string   `yaml:"mode"` // structured or heuristic
	Marker   string   `yaml:"marker"`
	Stoplist []string `yaml:"stoplist"`
	Limit    int      `yaml:"limit"`
}

// QuoteConfig 行情接口配置
type QuoteConfig struct {
	BaseURL string `yaml:"base_url"`
	Days    int    `yaml:"days"`
}

// SignalConfig 信号阈值（百分比）
type SignalConfig struct {
	JumpPercent       float64 `yaml:"jump_percent"`
	VolatilityPercent float64 `yaml:"volatility_percent"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultStoplist 常见的误判缩写
var DefaultStoplist = []string{"USA", "FED", "USD", "DAX", "AI", "KI", "NEWS"}

// LoadConfig 从指定路径加载配置，密钥优先取环境变量
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.SetDefaults()
	return &cfg, nil
}

// ApplyEnv 用环境变量覆盖密钥
func (c *Config) ApplyEnv() {
	switch c.LLM.Provider {
	case "anthropic":
		c.LLM.APIKey = getEnv("ANTHROPIC_API_KEY", c.LLM.APIKey)
	default:
		c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	}
	c.News.APIKey = getEnv("NEWS_API_KEY", c.News.APIKey)
	c.News.Fallback.Search.Tavily.APIKey = getEnv("TAVILY_API_KEY", c.News.Fallback.Search.Tavily.APIKey)
}

// SetDefaults 填充未配置项
func (c *Config) SetDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "anthropic":
			c.LLM.Model = "claude-sonnet-4-20250514"
		default:
			c.LLM.Model = "gpt-4"
		}
	}

	n := &c.News
	if n.Mode == "" {
		n.Mode = "single"
	}
	if n.BaseURL == "" {
		n.BaseURL = "https://newsapi.org/v2"
	}
	if n.Timeout <= 0 {
		n.Timeout = 10
	}
	if n.Category == "" {
		n.Category = "business"
	}
	if n.Language == "" {
		n.Language = "de"
	}
	if n.Limit <= 0 {
		n.Limit = 10
	}
	if n.Fallback.SecondaryLanguage == "" {
		n.Fallback.SecondaryLanguage = "en"
	}
	if n.Fallback.PerSourceLimit <= 0 {
		n.Fallback.PerSourceLimit = 5
	}
	if n.Fallback.MinPrimary <= 0 {
		n.Fallback.MinPrimary = 3
	}
	if n.Fallback.Search.Provider == "" {
		n.Fallback.Search.Provider = "newsapi"
	}
	if n.Fallback.Search.Query == "" {
		n.Fallback.Search.Query = "Börse OR Wirtschaft OR Aktien"
	}
	if n.Fallback.Search.Limit <= 0 {
		n.Fallback.Search.Limit = 10
	}

	if c.Analysis.Style == "" {
		c.Analysis.Style = "structured"
	}

	// 自由文本回复没有 TICKER: 行，默认改用启发式提取
	if c.Tickers.Mode == "" {
		if c.Analysis.Style == "unstructured" {
			c.Tickers.Mode = "heuristic"
		} else {
			c.Tickers.Mode = "structured"
		}
	} else if c.Analysis.Style == "unstructured" && c.Tickers.Mode == "structured" {
		logger.Log.Warnf("analysis.style=unstructured 与 tickers.mode=structured 同时使用时，回复中通常没有 TICKER: 行，可能提取不到任何代码")
	}
	if c.Tickers.Marker == "" {
		c.Tickers.Marker = "TICKER:"
	}
	if c.Tickers.Stoplist == nil {
		c.Tickers.Stoplist = append([]string(nil), DefaultStoplist...)
	}
	if c.Tickers.Limit <= 0 {
		c.Tickers.Limit = 3
	}

	if c.Quotes.BaseURL == "" {
		c.Quotes.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Quotes.Days <= 0 {
		c.Quotes.Days = 2
	}

	if c.Signals.JumpPercent == 0 {
		c.Signals.JumpPercent = 8
	}
	if c.Signals.VolatilityPercent == 0 {
		c.Signals.VolatilityPercent = 4
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// MissingSecrets 返回缺失的密钥名称
func (c *Config) MissingSecrets() []string {
	var missing []string
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		if c.LLM.Provider == "anthropic" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		} else {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if strings.TrimSpace(c.News.APIKey) == "" {
		missing = append(missing, "NEWS_API_KEY")
	}
	return missing
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
