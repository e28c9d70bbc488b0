package ticker

import (
	"regexp"
	"strings"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

const (
	ModeStructured = "structured"
	ModeHeuristic  = "heuristic"
)

var (
	letterRun = regexp.MustCompile(`\p{L}+`)
	symbol    = regexp.MustCompile(`^[A-Z]{2,5}$`)
)

// Extractor 从分析文本中提取股票代码，从不返回错误
type Extractor interface {
	Extract(text string) []string
}

// ExtractorFunc 函数适配器
type ExtractorFunc func(text string) []string

// Extract 调用函数本身
func (f ExtractorFunc) Extract(text string) []string {
	return f(text)
}

// New 按配置选择提取模式
func New(cfg config.TickerConfig) Extractor {
	if cfg.Mode == ModeHeuristic {
		stoplist := cfg.Stoplist
		limit := cfg.Limit
		return ExtractorFunc(func(text string) []string {
			return Heuristic(text, stoplist, limit)
		})
	}

	marker := cfg.Marker
	return ExtractorFunc(func(text string) []string {
		return Structured(text, marker)
	})
}

// IndexMarker 大小写不敏感地查找 marker 在行中首次出现的位置，未找到返回 -1
func IndexMarker(line, marker string) int {
	if marker == "" {
		return -1
	}
	for i := 0; i+len(marker) <= len(line); i++ {
		if strings.EqualFold(line[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

// CutMarker 返回 marker 之后的内容，去掉包裹的 markdown 强调符号和空白
func CutMarker(line, marker string) (string, bool) {
	idx := IndexMarker(line, marker)
	if idx < 0 {
		return "", false
	}
	return strings.Trim(line[idx+len(marker):], "* \t\r"), true
}

// Structured 读取第一行含 marker 的内容，按逗号切分
func Structured(text, marker string) []string {
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := CutMarker(line, marker); ok {
			return SplitList(rest)
		}
	}
	return nil
}

// SplitList 按逗号和换行切分代码列表，去掉空项和 N/A 占位
func SplitList(list string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == '\n' }) {
		part = strings.Trim(part, "* \t\r")
		if part == "" || strings.EqualFold(part, "N/A") {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Heuristic 取所有 2-5 位纯大写拉丁字母的连续字母串，去重后过滤停用词，最多 limit 个
func Heuristic(text string, stoplist []string, limit int) []string {
	stop := make(map[string]struct{}, len(stoplist))
	for _, s := range stoplist {
		stop[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, run := range letterRun.FindAllString(text, -1) {
		if !symbol.MatchString(run) {
			continue
		}
		if _, ok := seen[run]; ok {
			continue
		}
		seen[run] = struct{}{}
		if _, ok := stop[run]; ok {
			continue
		}
		out = append(out, run)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
