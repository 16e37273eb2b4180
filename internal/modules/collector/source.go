package collector

import (
	"context"
	"time"

	"github.com/plenumwatch/core/internal/models"
)

// SessionSource provides plenary sessions from an upstream feed. Ordering
// and deduplication are the provider's responsibility.
type SessionSource interface {
	FetchSessions(ctx context.Context, since time.Time) ([]models.PlenarySessionModel, error)
}

// TweetSource provides tweets from an upstream feed.
type TweetSource interface {
	FetchTweets(ctx context.Context, since time.Time) ([]models.TweetModel, error)
}

// SampleSource is a stand-in upstream that produces a fixed set of items
// relative to the current time. It keeps the pipeline exercisable until a
// real parliament feed and tweet ingest are wired in.
type SampleSource struct{}

func NewSampleSource() *SampleSource { return &SampleSource{} }

func (s *SampleSource) FetchSessions(ctx context.Context, since time.Time) ([]models.PlenarySessionModel, error) {
	now := time.Now().UTC()
	sessions := []models.PlenarySessionModel{
		{
			Title:     "Discussion on Climate Policy",
			Date:      now.AddDate(0, 0, -5),
			Content:   "This session discussed various climate policy initiatives...",
			SourceURL: "https://example.com/plenary/12345",
		},
		{
			Title:     "Budget Debates",
			Date:      now.AddDate(0, 0, -3),
			Content:   "The parliament debated the proposed budget...",
			SourceURL: "https://example.com/plenary/12346",
		},
	}

	fresh := sessions[:0]
	for _, item := range sessions {
		if item.Date.After(since) {
			fresh = append(fresh, item)
		}
	}
	return fresh, nil
}

func (s *SampleSource) FetchTweets(ctx context.Context, since time.Time) ([]models.TweetModel, error) {
	now := time.Now().UTC()
	tweets := []models.TweetModel{
		{
			TweetID:    "123456789",
			UserHandle: "@politician1",
			UserName:   "Politician One",
			Content:    "We need stronger climate policies now! #ClimateAction",
			PostedAt:   now.Add(-(4*24 + 2) * time.Hour),
		},
		{
			TweetID:    "987654321",
			UserHandle: "@politician2",
			UserName:   "Politician Two",
			Content:    "The proposed budget needs revision. We cannot accept these cuts to healthcare.",
			PostedAt:   now.Add(-(2*24 + 8) * time.Hour),
		},
	}

	fresh := tweets[:0]
	for _, item := range tweets {
		if item.PostedAt.After(since) {
			fresh = append(fresh, item)
		}
	}
	return fresh, nil
}
