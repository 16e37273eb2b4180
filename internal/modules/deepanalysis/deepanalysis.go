// Package deepanalysis produces on-demand, content-sampling topic reports.
package deepanalysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/plenumwatch/core/internal/llm"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// PriorityRoutine is the default report priority when the model does not
// provide one.
const PriorityRoutine = "routine"

type Service struct {
	registry store.TopicRegistry
	content  store.ContentStore
	users    store.UserStore
	llm      llm.Client
	logger   *zap.Logger
}

func NewService(registry store.TopicRegistry, content store.ContentStore, users store.UserStore, client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		content:  content,
		users:    users,
		llm:      client,
		logger:   logger.Named("DeepAnalysisService"),
	}
}

// deepReport is the JSON shape requested from the model.
type deepReport struct {
	RelevantExtracts []models.Extract `json:"relevant_extracts"`
	Opinions         string           `json:"opinions"`
	Summary          string           `json:"summary"`
	Context          string           `json:"context"`
	Sentiment        string           `json:"sentiment"`
	KeyStakeholders  []string         `json:"key_stakeholders"`
	Topics           []string         `json:"topics"`
	Priority         string           `json:"priority"`
}

// AnalyzeTopic gathers a bounded content sample, asks the model for a
// structured report on one topic and persists it. Returns (nil, nil) when
// the topic does not exist. A reply that fails to parse as JSON is kept as
// a fallback record carrying the raw text; only transport failures error.
func (s *Service) AnalyzeTopic(ctx context.Context, topicID string) (*models.TopicAnalysisModel, error) {
	topic, err := s.registry.GetTopic(topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, nil
	}

	sessions, err := s.content.ListSessions(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}
	tweets, err := s.content.ListTweets(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch tweets: %w", err)
	}
	if len(tweets) > maxTweets {
		tweets = tweets[:maxTweets]
	}

	s.logger.Info("analyzing topic",
		zap.String("topic", topic.Name),
		zap.Int("sessions", len(sessions)),
		zap.Int("tweets", len(tweets)))

	prompt := buildPrompt(topic, sessions, tweets)
	raw, err := s.llm.Complete(ctx, "", prompt, llm.CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	record := s.buildRecord(topic, raw)
	record.ContentID, record.ContentType = contentAnchor(sessions, tweets)

	if err := s.registry.InsertTopicAnalysis(record); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	s.logger.Info("topic analysis stored",
		zap.String("topic", topic.Name), zap.String("analysis_id", record.ID))
	return record, nil
}

// buildRecord parses the model reply, substituting a fallback record that
// keeps the raw text when the reply is not valid JSON.
func (s *Service) buildRecord(topic *models.TopicModel, raw string) *models.TopicAnalysisModel {
	var report deepReport
	if err := llm.UnmarshalModelJSON(raw, &report); err != nil {
		s.logger.Warn("deep analysis reply was not valid JSON, keeping raw text",
			zap.String("topic", topic.Name))
		return &models.TopicAnalysisModel{
			TopicID:     topic.ID,
			Sentiment:   llm.SentimentNeutral,
			Topics:      models.StringArray(topic.Keywords),
			Priority:    PriorityRoutine,
			RawResponse: raw,
		}
	}

	topics := report.Topics
	if len(topics) == 0 {
		topics = topic.Keywords
	}
	priority := report.Priority
	if priority == "" {
		priority = PriorityRoutine
	}

	return &models.TopicAnalysisModel{
		TopicID:      topic.ID,
		Extracts:     report.RelevantExtracts,
		Opinions:     report.Opinions,
		Summary:      report.Summary,
		Context:      report.Context,
		Sentiment:    llm.NormalizeSentiment(report.Sentiment),
		Stakeholders: models.StringArray(report.KeyStakeholders),
		Topics:       models.StringArray(topics),
		Priority:     priority,
	}
}

// contentAnchor picks the content item an analysis is attached to: the
// first sampled session, else the first tweet, else a generated id.
func contentAnchor(sessions []models.PlenarySessionModel, tweets []models.TweetModel) (string, string) {
	if len(sessions) > 0 {
		return sessions[0].ID, models.ContentTypePlenarySession
	}
	if len(tweets) > 0 {
		return tweets[0].ID, models.ContentTypeTweet
	}
	return uuid.New().String(), models.ContentTypeGenerated
}

// Topic outcome statuses for batch analysis.
const (
	OutcomeAnalyzed = "analyzed"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// TopicOutcome is the per-topic result of a batch run.
type TopicOutcome struct {
	TopicID    string `json:"topic_id"`
	TopicName  string `json:"topic_name"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	AnalysisID string `json:"analysis_id,omitempty"`
}

// BatchResult aggregates a user-wide analysis run.
type BatchResult struct {
	UserID   string         `json:"user_id"`
	Total    int            `json:"total"`
	Analyzed int            `json:"analyzed"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Results  []TopicOutcome `json:"results"`
}

// AnalyzeAllForUser runs AnalyzeTopic over every topic the user owns,
// processing each independently. With skipExisting set, topics that
// already have at least one stored analysis are marked skipped. Returns
// (nil, nil) when the user does not exist.
func (s *Service) AnalyzeAllForUser(ctx context.Context, userID string, skipExisting bool) (*BatchResult, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	topics, err := s.registry.ListTopics(&userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	result := &BatchResult{UserID: userID, Total: len(topics), Results: []TopicOutcome{}}
	for i := range topics {
		topic := topics[i]
		outcome := TopicOutcome{TopicID: topic.ID, TopicName: topic.Name}

		if skipExisting {
			count, err := s.registry.CountTopicAnalyses(topic.ID)
			if err == nil && count > 0 {
				outcome.Status = OutcomeSkipped
				result.Skipped++
				result.Results = append(result.Results, outcome)
				continue
			}
		}

		record, err := s.AnalyzeTopic(ctx, topic.ID)
		if err != nil {
			s.logger.Warn("batch topic analysis failed",
				zap.String("topic", topic.Name), zap.Error(err))
			outcome.Status = OutcomeFailed
			outcome.Reason = err.Error()
			result.Failed++
		} else if record == nil {
			// topic deleted between listing and analysis
			outcome.Status = OutcomeFailed
			outcome.Reason = "topic not found"
			result.Failed++
		} else {
			outcome.Status = OutcomeAnalyzed
			outcome.AnalysisID = record.ID
			result.Analyzed++
		}
		result.Results = append(result.Results, outcome)
	}
	return result, nil
}

// ListForTopic returns all stored analyses for a topic, newest first.
// Returns (nil, nil) when the topic does not exist.
func (s *Service) ListForTopic(topicID string) ([]models.TopicAnalysisModel, error) {
	topic, err := s.registry.GetTopic(topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, nil
	}
	analyses, err := s.registry.ListTopicAnalyses(topicID)
	if err != nil {
		return nil, err
	}
	if analyses == nil {
		analyses = []models.TopicAnalysisModel{}
	}
	return analyses, nil
}
