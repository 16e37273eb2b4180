package analyzer

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/pkg/response"
)

type AnalyzeDTO struct {
	ContentID   string `json:"content_id"   binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type CompareDTO struct {
	ContentID1   string `json:"content_id1"   binding:"required"`
	ContentType1 string `json:"content_type1" binding:"required"`
	ContentID2   string `json:"content_id2"   binding:"required"`
	ContentType2 string `json:"content_type2" binding:"required"`
}

type analyzeResponse struct {
	ContentID   string   `json:"content_id"`
	ContentType string   `json:"content_type"`
	Topics      []string `json:"topics"`
	Sentiment   string   `json:"sentiment"`
	Keywords    []string `json:"keywords"`
	Summary     string   `json:"summary"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/compare", h.compare)
}

func (h *Handler) analyze(c *gin.Context) {
	var dto AnalyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.AnalyzeItem(c.Request.Context(), dto.ContentID, dto.ContentType)
	if err != nil {
		if errors.Is(err, ErrInvalidContentType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if result == nil {
		response.NotFoundMsg(c, "content not found")
		return
	}
	response.OK(c, analyzeResponse{
		ContentID:   dto.ContentID,
		ContentType: dto.ContentType,
		Topics:      result.Topics,
		Sentiment:   result.Sentiment,
		Keywords:    result.Keywords,
		Summary:     result.Summary,
	})
}

func (h *Handler) compare(c *gin.Context) {
	var dto CompareDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Compare(c.Request.Context(),
		dto.ContentID1, dto.ContentType1, dto.ContentID2, dto.ContentType2)
	if err != nil {
		if errors.Is(err, ErrInvalidContentType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if result == nil {
		response.NotFoundMsg(c, "content not found")
		return
	}
	response.OK(c, result)
}
