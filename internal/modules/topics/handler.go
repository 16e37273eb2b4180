package topics

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/pkg/response"
)

type CreateTopicDTO struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords" binding:"required,min=1"`
	UserID      string   `json:"user_id" binding:"required"`
	IsPublic    bool     `json:"is_public"`
}

type UpdateTopicDTO struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Keywords    *[]string `json:"keywords" binding:"omitempty,min=1"`
	IsPublic    *bool     `json:"is_public"`
}

type SubscribeDTO struct {
	UserID string `json:"user_id" binding:"required"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/topics", h.create)
	rg.GET("/topics", h.list)
	rg.GET("/topics/:id", h.get)
	rg.PUT("/topics/:id", h.update)
	rg.DELETE("/topics/:id", h.delete)

	rg.POST("/topics/:id/subscribe", h.subscribe)
	rg.DELETE("/topics/:id/unsubscribe", h.unsubscribe)
	rg.GET("/users/:id/subscriptions", h.listSubscriptions)

	rg.GET("/mentions", h.mentions)
	rg.GET("/users/:id/mentions", h.userMentions)
}

// fail maps service sentinels to HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTopicNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrAlreadySubscribed), errors.Is(err, ErrNotSubscribed), errors.Is(err, ErrNoKeywords):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTopicDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	topic, err := h.svc.CreateTopic(CreateTopicInput{
		Name:        dto.Name,
		Description: dto.Description,
		Keywords:    dto.Keywords,
		UserID:      dto.UserID,
		IsPublic:    dto.IsPublic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, topic)
}

func (h *Handler) list(c *gin.Context) {
	var userID *string
	if v := c.Query("user_id"); v != "" {
		userID = &v
	}
	var isPublic *bool
	if v := c.Query("is_public"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "invalid is_public value")
			return
		}
		isPublic = &b
	}
	topics, err := h.svc.ListTopics(userID, isPublic)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, topics)
}

func (h *Handler) get(c *gin.Context) {
	topic, err := h.svc.GetTopic(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, topic)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTopicDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	topic, err := h.svc.UpdateTopic(c.Param("id"), UpdateTopicInput{
		Name:        dto.Name,
		Description: dto.Description,
		Keywords:    dto.Keywords,
		IsPublic:    dto.IsPublic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, topic)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteTopic(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sub, err := h.svc.Subscribe(dto.UserID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *Handler) unsubscribe(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}
	if err := h.svc.Unsubscribe(userID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listSubscriptions(c *gin.Context) {
	subs, err := h.svc.ListSubscriptions(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, subs)
}

func (h *Handler) mentions(c *gin.Context) {
	var topicID *string
	if v := c.Query("topic_id"); v != "" {
		topicID = &v
	}
	var notified *bool
	if v := c.Query("is_notified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "invalid is_notified value")
			return
		}
		notified = &b
	}
	limit := parseLimit(c)
	mentions, err := h.svc.Mentions(topicID, notified, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, mentions)
}

func (h *Handler) userMentions(c *gin.Context) {
	mentions, err := h.svc.UserMentions(c.Param("id"), parseLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, mentions)
}

func parseLimit(c *gin.Context) int {
	v := c.Query("limit")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
