package data

import (
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/domain"
)

// Data 进程内的会话存储
type Data struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewData 创建数据层
func NewData(logger log.Logger) (*Data, func(), error) {
	d := &Data{sessions: make(map[string]*domain.Session)}
	cleanup := func() {
		d.mu.RLock()
		n := len(d.sessions)
		d.mu.RUnlock()
		log.NewHelper(logger).Infof("closing the data resources, dropping %d sessions", n)
	}
	return d, cleanup, nil
}
