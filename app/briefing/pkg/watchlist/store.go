package watchlist

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Entry 自选股条目，EntryPrice 在加入时固定
type Entry struct {
	ID         string          `json:"id"`
	Ticker     string          `json:"ticker"`
	Name       string          `json:"name,omitempty"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	AddedAt    time.Time       `json:"added_at"`
}

// Store 单个会话的自选股列表，按加入顺序保存
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore 创建空列表
func NewStore() *Store {
	return &Store{}
}

// Entries 返回副本
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.entries...)
}

// Len 条目数
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear 清空
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Remove 按 ID 删除单条，不存在时返回 false
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}
