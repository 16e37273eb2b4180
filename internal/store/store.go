// Package store wraps the hosted relational database behind narrow
// interfaces so services can be tested against in-memory fakes.
package store

import (
	"time"

	"github.com/plenumwatch/core/internal/models"
	"gorm.io/gorm"
)

// ContentStore holds collected sessions and tweets. Lookups return
// (nil, nil) when the record does not exist.
type ContentStore interface {
	ListSessions(fromDate *time.Time, analyzed *bool) ([]models.PlenarySessionModel, error)
	GetSession(id string) (*models.PlenarySessionModel, error)
	InsertSession(s *models.PlenarySessionModel) error
	UpdateSessionAnalysis(id string, analyzed bool, result *models.AnalysisResult) error

	ListTweets(fromDate *time.Time, analyzed *bool) ([]models.TweetModel, error)
	GetTweet(id string) (*models.TweetModel, error)
	InsertTweet(t *models.TweetModel) error
	UpdateTweetAnalysis(id string, analyzed bool, result *models.AnalysisResult) error

	// LatestTimestamp returns the newest source timestamp (session date or
	// tweet post time) stored for the given content type, or nil when the
	// store holds no items of that type.
	LatestTimestamp(contentType string) (*time.Time, error)

	InsertContentAnalysis(a *models.ContentAnalysisModel) error
}

// TopicRegistry holds topics, subscriptions, mentions and deep analyses.
type TopicRegistry interface {
	ListTopics(userID *string, isPublic *bool) ([]models.TopicModel, error)
	GetTopic(id string) (*models.TopicModel, error)
	CreateTopic(t *models.TopicModel) error
	UpdateTopic(id string, updates map[string]interface{}) error
	DeleteTopic(id string) error

	Subscribe(userID, topicID string) (*models.TopicSubscriptionModel, error)
	Unsubscribe(userID, topicID string) error
	IsSubscribed(userID, topicID string) (bool, error)
	ListSubscriptions(userID string) ([]models.TopicSubscriptionModel, error)

	InsertMention(m *models.TopicMentionModel) error
	HasMention(topicID, contentID string) (bool, error)
	ListMentions(topicID *string, notified *bool, limit int) ([]models.TopicMentionModel, error)
	MentionsCount(topicID string) (int64, error)

	InsertTopicAnalysis(a *models.TopicAnalysisModel) error
	ListTopicAnalyses(topicID string) ([]models.TopicAnalysisModel, error)
	CountTopicAnalyses(topicID string) (int64, error)
}

// UserStore holds user records.
type UserStore interface {
	GetUser(id string) (*models.UserModel, error)
	GetUserByEmail(email string) (*models.UserModel, error)
	CreateUser(u *models.UserModel) error
}

// Store implements all store interfaces over a single gorm connection.
// Each call is one remote round trip; there is no local caching.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

var (
	_ ContentStore  = (*Store)(nil)
	_ TopicRegistry = (*Store)(nil)
	_ UserStore     = (*Store)(nil)
)
