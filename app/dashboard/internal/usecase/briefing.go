package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/engine"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/model"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/repo"
)

// Runner 晨报生成器
type Runner interface {
	Run(ctx context.Context, opts engine.RunOptions) *model.Briefing
}

// BriefingUseCase 晨报业务逻辑
type BriefingUseCase struct {
	runner Runner
	repo   repo.SessionRepo
	log    *log.Helper
}

// NewBriefingUseCase 创建晨报业务逻辑实例
func NewBriefingUseCase(runner Runner, repo repo.SessionRepo, logger log.Logger) *BriefingUseCase {
	return &BriefingUseCase{runner: runner, repo: repo, log: log.NewHelper(logger)}
}

// Generate 生成晨报并保存到会话
func (uc *BriefingUseCase) Generate(ctx context.Context, sessionID string) *model.Briefing {
	b := uc.runner.Run(ctx, engine.RunOptions{
		ProgressCallback: func(status string, progress int) {
			uc.log.WithContext(ctx).Debugf("session %s: %d%% %s", sessionID, progress, status)
		},
	})
	uc.repo.GetOrCreate(ctx, sessionID).SetBriefing(b)
	uc.log.WithContext(ctx).Infof("briefing generated: %d headlines, %d tickers, %d banners", len(b.Headlines), len(b.Tickers), len(b.Banners))
	return b
}

// Latest 会话中最近一次的晨报，可能为空
func (uc *BriefingUseCase) Latest(ctx context.Context, sessionID string) *model.Briefing {
	s, ok := uc.repo.Get(ctx, sessionID)
	if !ok {
		return nil
	}
	return s.Briefing()
}
