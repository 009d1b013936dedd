//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outdoor-planner/internal/bootstrap"
	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
	"github.com/yanqian/outdoor-planner/internal/domain/report"
	"github.com/yanqian/outdoor-planner/internal/infra/config"
	httpiface "github.com/yanqian/outdoor-planner/internal/interface/http"
	"github.com/yanqian/outdoor-planner/internal/observability"
	"github.com/yanqian/outdoor-planner/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		observability.NewMetrics,
		provideClock,
		provideReportConfig,
		provideConversationConfig,
		provideGeocoder,
		provideWeatherClient,
		provideConversationStore,
		report.NewService,
		conversation.NewService,
		wire.Bind(new(conversation.Reporter), new(report.Service)),
		httpiface.NewHandler,
		provideWSHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
