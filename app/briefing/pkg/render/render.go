package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/analyzer"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/model"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
)

//go:embed templates/*.html
var templates embed.FS

var page = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"fixed":  func(d decimal.Decimal) string { return d.StringFixed(2) },
	"signed": signed,
	"trend":  trend,
	"date":   func(t time.Time) string { return t.Format("02.01.2006") },
	"isStructured": func(a *analyzer.Analysis) bool {
		return a != nil && a.Kind == analyzer.KindStructured
	},
	"signalClass": func(s quote.Signal) string { return string(s) },
}).ParseFS(templates, "templates/page.html"))

// Page 页面数据
type Page struct {
	Briefing  *model.Briefing
	Watchlist []watchlist.Row
	// Hidden 当前没有行情、暂不展示的自选股数量
	Hidden int
	Notice string
	// Interactive 为 false 时不渲染表单，用于离线快照
	Interactive bool
	Today       time.Time
}

// Render 输出完整页面
func Render(w io.Writer, p Page) error {
	if p.Today.IsZero() {
		p.Today = time.Now()
	}
	return page.Execute(w, p)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

func trend(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "up"
	case d.IsNegative():
		return "down"
	default:
		return "flat"
	}
}
