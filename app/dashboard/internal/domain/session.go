package domain

import (
	"sync"
	"time"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/model"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
)

// Session 一个浏览器会话的状态，进程重启后丢失
type Session struct {
	ID        string
	CreatedAt time.Time
	Watchlist *watchlist.Store

	mu       sync.Mutex
	briefing *model.Briefing
	notice   string
}

// NewSession 创建空会话
func NewSession(id string, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, Watchlist: watchlist.NewStore()}
}

// Briefing 最近一次生成的晨报
func (s *Session) Briefing() *model.Briefing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.briefing
}

// SetBriefing 保存晨报
func (s *Session) SetBriefing(b *model.Briefing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.briefing = b
}

// SetNotice 设置一次性提示
func (s *Session) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// TakeNotice 读取并清除提示
func (s *Session) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.notice
	s.notice = ""
	return msg
}
