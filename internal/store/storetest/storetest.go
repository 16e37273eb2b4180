// Package storetest provides an in-memory Store implementation for tests.
package storetest

import (
	"fmt"
	"time"

	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store"
)

// MemStore keeps all records in exported slices so tests can seed and
// inspect them directly. It is not safe for concurrent use.
type MemStore struct {
	Sessions      []models.PlenarySessionModel
	Tweets        []models.TweetModel
	QuickAnalyses []models.ContentAnalysisModel
	Topics        []models.TopicModel
	Subs          []models.TopicSubscriptionModel
	Mentions      []models.TopicMentionModel
	Reports       []models.TopicAnalysisModel
	Users         []models.UserModel
}

var (
	_ store.ContentStore  = (*MemStore)(nil)
	_ store.TopicRegistry = (*MemStore)(nil)
	_ store.UserStore     = (*MemStore)(nil)
)

func New() *MemStore { return &MemStore{} }

func (m *MemStore) ListSessions(fromDate *time.Time, analyzed *bool) ([]models.PlenarySessionModel, error) {
	var out []models.PlenarySessionModel
	for _, s := range m.Sessions {
		if fromDate != nil && s.Date.Before(*fromDate) {
			continue
		}
		if analyzed != nil && s.Analyzed != *analyzed {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MemStore) GetSession(id string) (*models.PlenarySessionModel, error) {
	for i := range m.Sessions {
		if m.Sessions[i].ID == id {
			return &m.Sessions[i], nil
		}
	}
	return nil, nil
}

func (m *MemStore) InsertSession(s *models.PlenarySessionModel) error {
	if s.ID == "" {
		s.ID = fmt.Sprintf("session-%d", len(m.Sessions)+1)
	}
	m.Sessions = append(m.Sessions, *s)
	return nil
}

func (m *MemStore) UpdateSessionAnalysis(id string, analyzed bool, result *models.AnalysisResult) error {
	for i := range m.Sessions {
		if m.Sessions[i].ID == id {
			m.Sessions[i].Analyzed = analyzed
			m.Sessions[i].AnalysisResult = result
			return nil
		}
	}
	return fmt.Errorf("no session with id %s", id)
}

func (m *MemStore) ListTweets(fromDate *time.Time, analyzed *bool) ([]models.TweetModel, error) {
	var out []models.TweetModel
	for _, tw := range m.Tweets {
		if fromDate != nil && tw.PostedAt.Before(*fromDate) {
			continue
		}
		if analyzed != nil && tw.Analyzed != *analyzed {
			continue
		}
		out = append(out, tw)
	}
	return out, nil
}

func (m *MemStore) GetTweet(id string) (*models.TweetModel, error) {
	for i := range m.Tweets {
		if m.Tweets[i].ID == id {
			return &m.Tweets[i], nil
		}
	}
	return nil, nil
}

func (m *MemStore) InsertTweet(tw *models.TweetModel) error {
	if tw.ID == "" {
		tw.ID = fmt.Sprintf("tweet-%d", len(m.Tweets)+1)
	}
	m.Tweets = append(m.Tweets, *tw)
	return nil
}

func (m *MemStore) UpdateTweetAnalysis(id string, analyzed bool, result *models.AnalysisResult) error {
	for i := range m.Tweets {
		if m.Tweets[i].ID == id {
			m.Tweets[i].Analyzed = analyzed
			m.Tweets[i].AnalysisResult = result
			return nil
		}
	}
	return fmt.Errorf("no tweet with id %s", id)
}

func (m *MemStore) LatestTimestamp(contentType string) (*time.Time, error) {
	var latest *time.Time
	switch contentType {
	case models.ContentTypePlenarySession:
		for i := range m.Sessions {
			d := m.Sessions[i].Date
			if latest == nil || d.After(*latest) {
				latest = &d
			}
		}
	case models.ContentTypeTweet:
		for i := range m.Tweets {
			d := m.Tweets[i].PostedAt
			if latest == nil || d.After(*latest) {
				latest = &d
			}
		}
	}
	return latest, nil
}

func (m *MemStore) InsertContentAnalysis(a *models.ContentAnalysisModel) error {
	m.QuickAnalyses = append(m.QuickAnalyses, *a)
	return nil
}

func (m *MemStore) ListTopics(userID *string, isPublic *bool) ([]models.TopicModel, error) {
	var out []models.TopicModel
	for _, t := range m.Topics {
		if userID != nil && t.UserID != *userID {
			continue
		}
		if isPublic != nil && t.IsPublic != *isPublic {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MemStore) GetTopic(id string) (*models.TopicModel, error) {
	for i := range m.Topics {
		if m.Topics[i].ID == id {
			return &m.Topics[i], nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateTopic(t *models.TopicModel) error {
	if t.ID == "" {
		t.ID = fmt.Sprintf("topic-%d", len(m.Topics)+1)
	}
	m.Topics = append(m.Topics, *t)
	return nil
}

func (m *MemStore) UpdateTopic(id string, updates map[string]interface{}) error {
	for i := range m.Topics {
		if m.Topics[i].ID != id {
			continue
		}
		if v, ok := updates["name"].(string); ok {
			m.Topics[i].Name = v
		}
		if v, ok := updates["description"].(string); ok {
			m.Topics[i].Description = v
		}
		if v, ok := updates["keywords"].(models.StringArray); ok {
			m.Topics[i].Keywords = v
		}
		if v, ok := updates["is_public"].(bool); ok {
			m.Topics[i].IsPublic = v
		}
		return nil
	}
	return fmt.Errorf("no topic with id %s", id)
}

func (m *MemStore) DeleteTopic(id string) error {
	for i := range m.Topics {
		if m.Topics[i].ID == id {
			m.Topics = append(m.Topics[:i], m.Topics[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemStore) Subscribe(userID, topicID string) (*models.TopicSubscriptionModel, error) {
	sub := models.TopicSubscriptionModel{UserID: userID, TopicID: topicID}
	sub.ID = fmt.Sprintf("sub-%d", len(m.Subs)+1)
	m.Subs = append(m.Subs, sub)
	return &sub, nil
}

func (m *MemStore) Unsubscribe(userID, topicID string) error {
	for i := range m.Subs {
		if m.Subs[i].UserID == userID && m.Subs[i].TopicID == topicID {
			m.Subs = append(m.Subs[:i], m.Subs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemStore) IsSubscribed(userID, topicID string) (bool, error) {
	for _, sub := range m.Subs {
		if sub.UserID == userID && sub.TopicID == topicID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) ListSubscriptions(userID string) ([]models.TopicSubscriptionModel, error) {
	var out []models.TopicSubscriptionModel
	for _, sub := range m.Subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *MemStore) InsertMention(mention *models.TopicMentionModel) error {
	if mention.ID == "" {
		mention.ID = fmt.Sprintf("mention-%d", len(m.Mentions)+1)
	}
	if mention.DetectedAt.IsZero() {
		mention.DetectedAt = time.Now().UTC()
	}
	m.Mentions = append(m.Mentions, *mention)
	return nil
}

func (m *MemStore) HasMention(topicID, contentID string) (bool, error) {
	for _, mention := range m.Mentions {
		if mention.TopicID == topicID && mention.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) ListMentions(topicID *string, notified *bool, limit int) ([]models.TopicMentionModel, error) {
	var out []models.TopicMentionModel
	for _, mention := range m.Mentions {
		if topicID != nil && mention.TopicID != *topicID {
			continue
		}
		if notified != nil && mention.IsNotified != *notified {
			continue
		}
		out = append(out, mention)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) MentionsCount(topicID string) (int64, error) {
	var count int64
	for _, mention := range m.Mentions {
		if mention.TopicID == topicID {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) InsertTopicAnalysis(a *models.TopicAnalysisModel) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("analysis-%d", len(m.Reports)+1)
	}
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = time.Now().UTC()
	}
	m.Reports = append(m.Reports, *a)
	return nil
}

func (m *MemStore) ListTopicAnalyses(topicID string) ([]models.TopicAnalysisModel, error) {
	var out []models.TopicAnalysisModel
	for _, a := range m.Reports {
		if a.TopicID == topicID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) CountTopicAnalyses(topicID string) (int64, error) {
	var count int64
	for _, a := range m.Reports {
		if a.TopicID == topicID {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) GetUser(id string) (*models.UserModel, error) {
	for i := range m.Users {
		if m.Users[i].ID == id {
			return &m.Users[i], nil
		}
	}
	return nil, nil
}

func (m *MemStore) GetUserByEmail(email string) (*models.UserModel, error) {
	for i := range m.Users {
		if m.Users[i].Email == email {
			return &m.Users[i], nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateUser(u *models.UserModel) error {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(m.Users)+1)
	}
	m.Users = append(m.Users, *u)
	return nil
}
