package service

import (
	"errors"
	nethttp "net/http"
	"time"

	_ "github.com/go-kratos/kratos/v2/encoding/json"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/render"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/usecase"
)

// SessionCookie 会话 Cookie 名称
const SessionCookie = "briefing_session"

type DashboardService struct {
	ucBriefing  *usecase.BriefingUseCase
	ucWatchlist *usecase.WatchlistUseCase
	log         *log.Helper
}

func NewDashboardService(ucBriefing *usecase.BriefingUseCase, ucWatchlist *usecase.WatchlistUseCase, logger log.Logger) *DashboardService {
	return &DashboardService{
		ucBriefing:  ucBriefing,
		ucWatchlist: ucWatchlist,
		log:         log.NewHelper(logger),
	}
}

// AddTickerRequest 加入自选股请求
type AddTickerRequest struct {
	Ticker string `json:"ticker"`
}

// Index 渲染页面
func (s *DashboardService) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	ctx := r.Context()
	sid := s.session(w, r)
	view := s.ucWatchlist.List(ctx, sid)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.Render(w, render.Page{
		Briefing:    s.ucBriefing.Latest(ctx, sid),
		Watchlist:   view.Rows,
		Hidden:      view.Hidden,
		Notice:      s.ucWatchlist.TakeNotice(ctx, sid),
		Interactive: true,
	})
	if err != nil {
		s.log.WithContext(ctx).Errorf("render page: %v", err)
	}
}

// Generate 生成晨报后回到首页
func (s *DashboardService) Generate(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.ucBriefing.Generate(r.Context(), s.session(w, r))
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// AddTicker 表单加入自选股，失败提示在页面上显示
func (s *DashboardService) AddTicker(w nethttp.ResponseWriter, r *nethttp.Request) {
	sid := s.session(w, r)
	if _, err := s.ucWatchlist.Add(r.Context(), sid, r.FormValue("ticker")); err != nil {
		s.log.WithContext(r.Context()).Infof("add ticker: %v", err)
	}
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// ClearWatchlist 表单清空自选股
func (s *DashboardService) ClearWatchlist(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.ucWatchlist.Clear(r.Context(), s.session(w, r))
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// RemoveEntry 表单删除单条
func (s *DashboardService) RemoveEntry(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := s.ucWatchlist.Remove(r.Context(), s.session(w, r), mux.Vars(r)["id"]); err != nil {
		s.log.WithContext(r.Context()).Infof("remove entry %s: %v", mux.Vars(r)["id"], err)
	}
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// APIGenerate POST /api/v1/briefing
func (s *DashboardService) APIGenerate(w nethttp.ResponseWriter, r *nethttp.Request) {
	b := s.ucBriefing.Generate(r.Context(), s.session(w, r))
	s.reply(w, r, b)
}

// APIListWatchlist GET /api/v1/watchlist
func (s *DashboardService) APIListWatchlist(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.reply(w, r, s.ucWatchlist.List(r.Context(), s.session(w, r)))
}

// APIAddTicker POST /api/v1/watchlist
func (s *DashboardService) APIAddTicker(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req AddTickerRequest
	if err := http.DefaultRequestDecoder(r, &req); err != nil {
		http.DefaultErrorEncoder(w, r, kerrors.BadRequest("INVALID_BODY", err.Error()))
		return
	}

	sid := s.session(w, r)
	entry, err := s.ucWatchlist.Add(r.Context(), sid, req.Ticker)
	// API 调用方直接拿到错误，不需要页面提示
	s.ucWatchlist.TakeNotice(r.Context(), sid)
	switch {
	case errors.Is(err, watchlist.ErrEmptyTicker):
		http.DefaultErrorEncoder(w, r, kerrors.BadRequest("EMPTY_TICKER", "ticker is required"))
		return
	case errors.Is(err, watchlist.ErrNoQuote):
		http.DefaultErrorEncoder(w, r, kerrors.NotFound("NO_QUOTE", "no quote for "+watchlist.Normalize(req.Ticker)))
		return
	case err != nil:
		http.DefaultErrorEncoder(w, r, err)
		return
	}
	s.reply(w, r, entry)
}

// APIClearWatchlist DELETE /api/v1/watchlist
func (s *DashboardService) APIClearWatchlist(w nethttp.ResponseWriter, r *nethttp.Request) {
	sid := s.session(w, r)
	s.ucWatchlist.Clear(r.Context(), sid)
	s.reply(w, r, s.ucWatchlist.List(r.Context(), sid))
}

// APIRemoveEntry DELETE /api/v1/watchlist/{id}
func (s *DashboardService) APIRemoveEntry(w nethttp.ResponseWriter, r *nethttp.Request) {
	sid := s.session(w, r)
	if err := s.ucWatchlist.Remove(r.Context(), sid, mux.Vars(r)["id"]); err != nil {
		http.DefaultErrorEncoder(w, r, kerrors.NotFound("ENTRY_NOT_FOUND", err.Error()))
		return
	}
	s.reply(w, r, s.ucWatchlist.List(r.Context(), sid))
}

// Health GET /health
func (s *DashboardService) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.reply(w, r, map[string]string{"status": "ok"})
}

func (s *DashboardService) reply(w nethttp.ResponseWriter, r *nethttp.Request, v interface{}) {
	if err := http.DefaultResponseEncoder(w, r, v); err != nil {
		s.log.WithContext(r.Context()).Errorf("encode response: %v", err)
	}
}

// session 读取会话 Cookie，缺失或非法时签发新的
func (s *DashboardService) session(w nethttp.ResponseWriter, r *nethttp.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	nethttp.SetCookie(w, &nethttp.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	// 同一请求内后续读取使用新 ID
	r.AddCookie(&nethttp.Cookie{Name: SessionCookie, Value: id})
	return id
}
