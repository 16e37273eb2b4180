// Package analyzer runs LLM topic extraction over collected content and
// records topic mentions.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/plenumwatch/core/internal/llm"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// ErrInvalidContentType signals a content_type outside the recognized set.
var ErrInvalidContentType = errors.New("invalid content type")

type Service struct {
	content  store.ContentStore
	detector *Detector
	llm      llm.Client
	logger   *zap.Logger
}

func NewService(content store.ContentStore, detector *Detector, client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		content:  content,
		detector: detector,
		llm:      client,
		logger:   logger.Named("AnalyzerService"),
	}
}

// AnalyzeItem runs topic extraction on one content item, persists the
// payload together with the analyzed flag, records a quick analysis entry,
// and then runs mention detection. Returns (nil, nil) when the item does
// not exist. Mention detection is skipped when the store update fails, so
// mentions never reference an item whose analysis state is inconsistent.
func (s *Service) AnalyzeItem(ctx context.Context, id, contentType string) (*models.AnalysisResult, error) {
	body, title, found, err := s.contentText(id, contentType)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	extraction, err := s.llm.AnalyzeTopics(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("topic extraction: %w", err)
	}

	result := &models.AnalysisResult{
		Topics:    extraction.Topics,
		Sentiment: extraction.Sentiment,
		Keywords:  extraction.Keywords,
		Summary:   extraction.Summary,
	}

	switch contentType {
	case models.ContentTypePlenarySession:
		err = s.content.UpdateSessionAnalysis(id, true, result)
	case models.ContentTypeTweet:
		err = s.content.UpdateTweetAnalysis(id, true, result)
	}
	if err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	quick := models.ContentAnalysisModel{
		ContentID:   id,
		ContentType: contentType,
		Topics:      extraction.Topics,
		Sentiment:   extraction.Sentiment,
		Keywords:    extraction.Keywords,
	}
	if err := s.content.InsertContentAnalysis(&quick); err != nil {
		s.logger.Warn("failed to insert quick analysis record",
			zap.String("content_id", id), zap.Error(err))
	}

	if _, err := s.detector.Detect(id, contentType, body, title, extraction.Topics, extraction.Keywords); err != nil {
		s.logger.Warn("mention detection failed",
			zap.String("content_id", id), zap.Error(err))
	}

	s.logger.Info("content analyzed",
		zap.String("content_id", id), zap.String("content_type", contentType))
	return result, nil
}

// SweepFailure records one item the analysis sweep could not process.
type SweepFailure struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	Reason      string `json:"reason"`
}

// SweepResult summarizes one best-effort analysis sweep.
type SweepResult struct {
	AnalyzedSessions int            `json:"analyzed_sessions"`
	AnalyzedTweets   int            `json:"analyzed_tweets"`
	Failures         []SweepFailure `json:"failures,omitempty"`
}

// RunAnalysis analyzes every unanalyzed item independently. Per-item
// failures are recorded and skipped so one bad item cannot stall the sweep.
func (s *Service) RunAnalysis(ctx context.Context) (*SweepResult, error) {
	unanalyzed := false
	sessions, err := s.content.ListSessions(nil, &unanalyzed)
	if err != nil {
		return nil, fmt.Errorf("list unanalyzed sessions: %w", err)
	}
	tweets, err := s.content.ListTweets(nil, &unanalyzed)
	if err != nil {
		return nil, fmt.Errorf("list unanalyzed tweets: %w", err)
	}

	result := &SweepResult{}
	for i := range sessions {
		if _, err := s.AnalyzeItem(ctx, sessions[i].ID, models.ContentTypePlenarySession); err != nil {
			s.logger.Warn("session analysis failed",
				zap.String("content_id", sessions[i].ID), zap.Error(err))
			result.Failures = append(result.Failures, SweepFailure{
				ContentID:   sessions[i].ID,
				ContentType: models.ContentTypePlenarySession,
				Reason:      err.Error(),
			})
			continue
		}
		result.AnalyzedSessions++
	}
	for i := range tweets {
		if _, err := s.AnalyzeItem(ctx, tweets[i].ID, models.ContentTypeTweet); err != nil {
			s.logger.Warn("tweet analysis failed",
				zap.String("content_id", tweets[i].ID), zap.Error(err))
			result.Failures = append(result.Failures, SweepFailure{
				ContentID:   tweets[i].ID,
				ContentType: models.ContentTypeTweet,
				Reason:      err.Error(),
			})
			continue
		}
		result.AnalyzedTweets++
	}
	return result, nil
}

// Compare fetches both content bodies and asks the model for a topic
// comparison. Returns (nil, nil) when either side is missing.
func (s *Service) Compare(ctx context.Context, idA, typeA, idB, typeB string) (*llm.Comparison, error) {
	bodyA, _, foundA, err := s.contentText(idA, typeA)
	if err != nil {
		return nil, err
	}
	bodyB, _, foundB, err := s.contentText(idB, typeB)
	if err != nil {
		return nil, err
	}
	if !foundA || !foundB {
		return nil, nil
	}
	return s.llm.CompareTopics(ctx, bodyA, bodyB)
}

// contentText resolves the body and title for a content item. found reports
// whether the item exists; an item with an empty body is still found.
func (s *Service) contentText(id, contentType string) (body, title string, found bool, err error) {
	switch contentType {
	case models.ContentTypePlenarySession:
		session, err := s.content.GetSession(id)
		if err != nil || session == nil {
			return "", "", false, err
		}
		return session.Content, session.Title, true, nil
	case models.ContentTypeTweet:
		tweet, err := s.content.GetTweet(id)
		if err != nil || tweet == nil {
			return "", "", false, err
		}
		return tweet.Content, tweet.UserHandle, true, nil
	default:
		return "", "", false, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}
}
