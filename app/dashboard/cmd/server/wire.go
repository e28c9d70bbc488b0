//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/conf"
	"github.com/marali-ops/aktien_checker/app/dashboard/internal/server"
)

// initApp 组装看板服务：行情、晨报引擎、会话仓库与 HTTP 服务
func initApp(*conf.Server, *conf.Briefing, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		newApp,
	))
}
