package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/repo"
)

// ErrEntryNotFound 条目不存在
var ErrEntryNotFound = errors.New("watchlist entry not found")

// Tracker 自选股操作
type Tracker interface {
	Add(ctx context.Context, store *watchlist.Store, ticker string) (*watchlist.Entry, error)
	Rows(ctx context.Context, entries []watchlist.Entry) []watchlist.Row
}

// WatchlistView 自选股列表及当前无行情的条目数
type WatchlistView struct {
	Rows   []watchlist.Row `json:"rows"`
	Total  int             `json:"total"`
	Hidden int             `json:"hidden"`
}

// WatchlistUseCase 自选股业务逻辑
type WatchlistUseCase struct {
	tracker Tracker
	repo    repo.SessionRepo
	log     *log.Helper
}

// NewWatchlistUseCase 创建自选股业务逻辑实例
func NewWatchlistUseCase(tracker Tracker, repo repo.SessionRepo, logger log.Logger) *WatchlistUseCase {
	return &WatchlistUseCase{tracker: tracker, repo: repo, log: log.NewHelper(logger)}
}

// Add 加入自选股，失败时在会话里留下提示
func (uc *WatchlistUseCase) Add(ctx context.Context, sessionID, ticker string) (*watchlist.Entry, error) {
	s := uc.repo.GetOrCreate(ctx, sessionID)
	entry, err := uc.tracker.Add(ctx, s.Watchlist, ticker)
	switch {
	case errors.Is(err, watchlist.ErrNoQuote):
		s.SetNotice(fmt.Sprintf("Keine Kursdaten für %s gefunden.", watchlist.Normalize(ticker)))
		return nil, err
	case err != nil:
		s.SetNotice("Bitte ein Ticker-Symbol eingeben.")
		return nil, err
	}
	s.SetNotice(fmt.Sprintf("%s zur Watchlist hinzugefügt.", entry.Ticker))
	return entry, nil
}

// List 带表现的自选股列表
func (uc *WatchlistUseCase) List(ctx context.Context, sessionID string) *WatchlistView {
	s, ok := uc.repo.Get(ctx, sessionID)
	if !ok {
		return &WatchlistView{}
	}
	// 总数和行来自同一份快照，并发清空不会让 Hidden 变成负数
	entries := s.Watchlist.Entries()
	rows := uc.tracker.Rows(ctx, entries)
	return &WatchlistView{Rows: rows, Total: len(entries), Hidden: len(entries) - len(rows)}
}

// Clear 清空
func (uc *WatchlistUseCase) Clear(ctx context.Context, sessionID string) {
	if s, ok := uc.repo.Get(ctx, sessionID); ok {
		s.Watchlist.Clear()
		uc.log.WithContext(ctx).Infof("watchlist cleared: %s", sessionID)
	}
}

// Remove 删除单条，找不到时在会话里留下提示
func (uc *WatchlistUseCase) Remove(ctx context.Context, sessionID, entryID string) error {
	s := uc.repo.GetOrCreate(ctx, sessionID)
	if !s.Watchlist.Remove(entryID) {
		s.SetNotice("Eintrag nicht gefunden, die Watchlist wurde bereits geändert.")
		return ErrEntryNotFound
	}
	return nil
}

// TakeNotice 读取一次性提示
func (uc *WatchlistUseCase) TakeNotice(ctx context.Context, sessionID string) string {
	s, ok := uc.repo.Get(ctx, sessionID)
	if !ok {
		return ""
	}
	return s.TakeNotice()
}
