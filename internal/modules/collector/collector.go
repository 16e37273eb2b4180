// Package collector ingests new content from upstream sources.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/pkg/response"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// initialLookback bounds the first collection when the store is empty.
const initialLookback = 30 * 24 * time.Hour

// Result reports how many items a collection run inserted.
type Result struct {
	NewSessions int `json:"new_sessions"`
	NewTweets   int `json:"new_tweets"`
}

type Service struct {
	content  store.ContentStore
	sessions SessionSource
	tweets   TweetSource
	logger   *zap.Logger
}

func NewService(content store.ContentStore, sessions SessionSource, tweets TweetSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		content:  content,
		sessions: sessions,
		tweets:   tweets,
		logger:   logger.Named("CollectorService"),
	}
}

// RunCollection fetches items strictly newer than the latest stored
// timestamp per content type and inserts them.
func (s *Service) RunCollection(ctx context.Context) (*Result, error) {
	sessionCount, err := s.collectSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect sessions: %w", err)
	}
	tweetCount, err := s.collectTweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect tweets: %w", err)
	}
	return &Result{NewSessions: sessionCount, NewTweets: tweetCount}, nil
}

func (s *Service) collectSessions(ctx context.Context) (int, error) {
	since, err := s.sinceTimestamp(models.ContentTypePlenarySession)
	if err != nil {
		return 0, err
	}

	fetched, err := s.sessions.FetchSessions(ctx, since)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := range fetched {
		item := fetched[i]
		if !item.Date.After(since) {
			continue
		}
		if err := s.content.InsertSession(&item); err != nil {
			s.logger.Warn("failed to insert plenary session",
				zap.String("title", item.Title), zap.Error(err))
			continue
		}
		s.logger.Info("inserted plenary session", zap.String("title", item.Title))
		inserted++
	}
	return inserted, nil
}

func (s *Service) collectTweets(ctx context.Context) (int, error) {
	since, err := s.sinceTimestamp(models.ContentTypeTweet)
	if err != nil {
		return 0, err
	}

	fetched, err := s.tweets.FetchTweets(ctx, since)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := range fetched {
		item := fetched[i]
		if !item.PostedAt.After(since) {
			continue
		}
		if err := s.content.InsertTweet(&item); err != nil {
			s.logger.Warn("failed to insert tweet",
				zap.String("handle", item.UserHandle), zap.Error(err))
			continue
		}
		s.logger.Info("inserted tweet", zap.String("handle", item.UserHandle))
		inserted++
	}
	return inserted, nil
}

func (s *Service) sinceTimestamp(contentType string) (time.Time, error) {
	latest, err := s.content.LatestTimestamp(contentType)
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Now().UTC().Add(-initialLookback), nil
	}
	return *latest, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/collect", h.collect)
}

func (h *Handler) collect(c *gin.Context) {
	result, err := h.svc.RunCollection(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}
