// Package health exposes liveness and scheduler introspection endpoints.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/pkg/cron"
	"github.com/plenumwatch/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	sched *cron.Scheduler
}

func NewHandler(db *gorm.DB, sched *cron.Scheduler) *Handler {
	return &Handler{db: db, sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.status)
	rg.GET("/health/cron", h.cronList)
	rg.POST("/health/cron/:name/run", h.cronRun)
}

func (h *Handler) status(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) cronList(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) cronRun(c *gin.Context) {
	// Detached context: the job outlives the triggering request.
	if err := h.sched.Run(context.Background(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"triggered": c.Param("name")})
}
