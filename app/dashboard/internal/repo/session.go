package repo

import (
	"context"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/domain"
)

// SessionRepo 会话仓库接口
type SessionRepo interface {
	// Get 按 ID 获取会话
	Get(ctx context.Context, id string) (*domain.Session, bool)
	// GetOrCreate 获取会话，不存在时以该 ID 新建
	GetOrCreate(ctx context.Context, id string) *domain.Session
	// Count 当前会话数
	Count(ctx context.Context) int
}
