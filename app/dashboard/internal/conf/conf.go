package conf

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Briefing *Briefing `json:"briefing"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Briefing struct {
	Llm      *LLM      `json:"llm"`
	News     *News     `json:"news"`
	Analysis *Analysis `json:"analysis"`
	Tickers  *Tickers  `json:"tickers"`
	Quotes   *Quotes   `json:"quotes"`
	Signals  *Signals  `json:"signals"`
	Log      *Log      `json:"log"`
}

type LLM struct {
	Provider string `json:"provider"`
	BaseUrl  string `json:"base_url"`
	ApiKey   string `json:"api_key"`
	Model    string `json:"model"`
}

type News struct {
	Mode     string    `json:"mode"`
	ApiKey   string    `json:"api_key"`
	BaseUrl  string    `json:"base_url"`
	Timeout  int32     `json:"timeout"`
	Category string    `json:"category"`
	Language string    `json:"language"`
	Limit    int32     `json:"limit"`
	Fallback *Fallback `json:"fallback"`
}

type Fallback struct {
	SecondaryLanguage string  `json:"secondary_language"`
	PerSourceLimit    int32   `json:"per_source_limit"`
	MinPrimary        int32   `json:"min_primary"`
	Search            *Search `json:"search"`
}

type Search struct {
	Provider string   `json:"provider"`
	Query    string   `json:"query"`
	Limit    int32    `json:"limit"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Analysis struct {
	Style string `json:"style"`
}

type Tickers struct {
	Mode     string   `json:"mode"`
	Marker   string   `json:"marker"`
	Stoplist []string `json:"stoplist"`
	Limit    int32    `json:"limit"`
}

type Quotes struct {
	BaseUrl string `json:"base_url"`
	Days    int32  `json:"days"`
}

type Signals struct {
	JumpPercent       float64 `json:"jump_percent"`
	VolatilityPercent float64 `json:"volatility_percent"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
