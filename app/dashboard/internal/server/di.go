package server

import (
	"github.com/google/wire"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/engine"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/data"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/service"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/usecase"
)

// ProviderSet 是看板服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Briefing pipeline providers
	NewBriefingConfig,
	NewQuoteService,
	NewTracker,
	NewBriefingEngine,
	wire.Bind(new(usecase.Runner), new(*engine.Engine)),
	wire.Bind(new(usecase.Tracker), new(*watchlist.Tracker)),

	// Data providers
	data.NewData,
	data.NewSessionRepo,

	// UseCase providers
	usecase.NewBriefingUseCase,
	usecase.NewWatchlistUseCase,

	// Service providers
	service.NewDashboardService,
)
