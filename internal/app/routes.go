package app

import (
	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/llm"
	"github.com/plenumwatch/core/internal/modules/analyzer"
	"github.com/plenumwatch/core/internal/modules/collector"
	"github.com/plenumwatch/core/internal/modules/content"
	"github.com/plenumwatch/core/internal/modules/deepanalysis"
	"github.com/plenumwatch/core/internal/modules/health"
	"github.com/plenumwatch/core/internal/modules/topics"
	"github.com/plenumwatch/core/internal/modules/users"
	"github.com/plenumwatch/core/internal/pkg/response"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// services groups the long-lived domain services shared between HTTP
// handlers and cron jobs.
type services struct {
	store     *store.Store
	collector *collector.Service
	analyzer  *analyzer.Service
	deep      *deepanalysis.Service
	topics    *topics.Service
	users     *users.Service
}

func buildServices(st *store.Store, llmClient llm.Client, logger *zap.Logger) *services {
	sampleSource := collector.NewSampleSource()
	detector := analyzer.NewDetector(st, logger)
	return &services{
		store:     st,
		collector: collector.NewService(st, sampleSource, sampleSource, logger),
		analyzer:  analyzer.NewService(st, detector, llmClient, logger),
		deep:      deepanalysis.NewService(st, st, st, llmClient, logger),
		topics:    topics.NewService(st, st, st, logger),
		users:     users.NewService(st, logger),
	}
}

func (a *App) registerRoutes(svcs *services) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "plenumwatch-core",
		"status":  "online",
		"version": "1.0.0",
	}
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, appInfo)
	})

	api := r.Group("/api")

	health.NewHandler(a.db, a.sched).RegisterRoutes(api)
	users.NewHandler(svcs.users).RegisterRoutes(api)
	topics.NewHandler(svcs.topics).RegisterRoutes(api)
	content.NewHandler(svcs.store).RegisterRoutes(api)
	collector.NewHandler(svcs.collector).RegisterRoutes(api)
	analyzer.NewHandler(svcs.analyzer).RegisterRoutes(api)
	deepanalysis.NewHandler(svcs.deep).RegisterRoutes(api)
}
