package deepanalysis

import (
	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/pkg/response"
)

type AnalyzeTopicDTO struct {
	TopicID string `json:"topic_id" binding:"required"`
}

type BatchAnalyzeDTO struct {
	UserID string `json:"user_id" binding:"required"`
	// AnalyzeExisting forces re-analysis of topics that already have a
	// stored report.
	AnalyzeExisting bool `json:"analyze_existing"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyzeTopic)
	rg.GET("/topics/:id/analyses", h.listForTopic)
	rg.POST("/user-topics-analysis", h.analyzeAllForUser)
}

func (h *Handler) analyzeTopic(c *gin.Context) {
	var dto AnalyzeTopicDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	record, err := h.svc.AnalyzeTopic(c.Request.Context(), dto.TopicID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if record == nil {
		response.NotFoundMsg(c, "topic not found")
		return
	}
	response.Created(c, record)
}

func (h *Handler) listForTopic(c *gin.Context) {
	analyses, err := h.svc.ListForTopic(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if analyses == nil {
		response.NotFoundMsg(c, "topic not found")
		return
	}
	response.OK(c, analyses)
}

func (h *Handler) analyzeAllForUser(c *gin.Context) {
	var dto BatchAnalyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.AnalyzeAllForUser(c.Request.Context(), dto.UserID, !dto.AnalyzeExisting)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if result == nil {
		response.NotFoundMsg(c, "user not found")
		return
	}
	response.OK(c, result)
}
