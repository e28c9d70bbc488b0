package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/domain"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/repo"
)

type sessionRepo struct {
	data *Data
	log  *log.Helper
	now  func() time.Time
}

// NewSessionRepo 创建会话仓库
// TODO: 按最后访问时间淘汰长期不活跃的会话
func NewSessionRepo(data *Data, logger log.Logger) repo.SessionRepo {
	return &sessionRepo{data: data, log: log.NewHelper(logger), now: time.Now}
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.Session, bool) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	s, ok := r.data.sessions[id]
	return s, ok
}

func (r *sessionRepo) GetOrCreate(ctx context.Context, id string) *domain.Session {
	if s, ok := r.Get(ctx, id); ok {
		return s
	}

	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	// 加写锁前可能已被其他请求创建
	if s, ok := r.data.sessions[id]; ok {
		return s
	}
	s := domain.NewSession(id, r.now())
	r.data.sessions[id] = s
	r.log.WithContext(ctx).Debugf("new session: %s", id)
	return s
}

func (r *sessionRepo) Count(ctx context.Context) int {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	return len(r.data.sessions)
}
