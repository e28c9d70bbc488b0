package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/gorilla/mux"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/conf"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.DashboardService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(accessLog(logger)),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	srv.HandlePrefix("/", NewRouter(s))
	return srv
}

// NewRouter 注册页面和 JSON 接口路由
func NewRouter(s *service.DashboardService) *mux.Router {
	r := mux.NewRouter()

	// 页面
	r.HandleFunc("/", s.Index).Methods(nethttp.MethodGet)
	r.HandleFunc("/briefing", s.Generate).Methods(nethttp.MethodPost)
	r.HandleFunc("/watchlist", s.AddTicker).Methods(nethttp.MethodPost)
	r.HandleFunc("/watchlist/clear", s.ClearWatchlist).Methods(nethttp.MethodPost)
	r.HandleFunc("/watchlist/{id}/delete", s.RemoveEntry).Methods(nethttp.MethodPost)

	// JSON 接口
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/briefing", s.APIGenerate).Methods(nethttp.MethodPost)
	api.HandleFunc("/watchlist", s.APIListWatchlist).Methods(nethttp.MethodGet)
	api.HandleFunc("/watchlist", s.APIAddTicker).Methods(nethttp.MethodPost)
	api.HandleFunc("/watchlist", s.APIClearWatchlist).Methods(nethttp.MethodDelete)
	api.HandleFunc("/watchlist/{id}", s.APIRemoveEntry).Methods(nethttp.MethodDelete)

	r.HandleFunc("/health", s.Health).Methods(nethttp.MethodGet)
	return r
}

// accessLog 记录每个请求的方法、路径和耗时，并兜住 handler 中的 panic
func accessLog(logger log.Logger) http.FilterFunc {
	helper := log.NewHelper(logger)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					helper.Errorf("panic: %v %s %s", rec, r.Method, r.URL.Path)
					nethttp.Error(w, "internal server error", nethttp.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
			helper.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
		})
	}
}
