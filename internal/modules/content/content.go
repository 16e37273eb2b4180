// Package content exposes read access to collected sessions and tweets.
package content

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/pkg/response"
	"github.com/plenumwatch/core/internal/store"
)

type Handler struct {
	content store.ContentStore
}

func NewHandler(content store.ContentStore) *Handler {
	return &Handler{content: content}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plenary-sessions", h.listSessions)
	rg.GET("/plenary-sessions/:id", h.getSession)
	rg.GET("/tweets", h.listTweets)
	rg.GET("/tweets/:id", h.getTweet)
}

// listFilters extracts the shared from_date and analyzed query filters.
// Returns ok=false after writing a 400 when a value does not parse.
func listFilters(c *gin.Context) (fromDate *time.Time, analyzed *bool, ok bool) {
	if v := c.Query("from_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02", v)
		}
		if err != nil {
			response.BadRequest(c, "invalid from_date value")
			return nil, nil, false
		}
		fromDate = &t
	}
	if v := c.Query("analyzed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "invalid analyzed value")
			return nil, nil, false
		}
		analyzed = &b
	}
	return fromDate, analyzed, true
}

func (h *Handler) listSessions(c *gin.Context) {
	fromDate, analyzed, ok := listFilters(c)
	if !ok {
		return
	}
	sessions, err := h.content.ListSessions(fromDate, analyzed)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, sessions)
}

func (h *Handler) getSession(c *gin.Context) {
	session, err := h.content.GetSession(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if session == nil {
		response.NotFoundMsg(c, "plenary session not found")
		return
	}
	response.OK(c, session)
}

func (h *Handler) listTweets(c *gin.Context) {
	fromDate, analyzed, ok := listFilters(c)
	if !ok {
		return
	}
	tweets, err := h.content.ListTweets(fromDate, analyzed)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tweets)
}

func (h *Handler) getTweet(c *gin.Context) {
	tweet, err := h.content.GetTweet(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tweet == nil {
		response.NotFoundMsg(c, "tweet not found")
		return
	}
	response.OK(c, tweet)
}
