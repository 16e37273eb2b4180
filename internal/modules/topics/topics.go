// Package topics manages user-defined topics, subscriptions and the
// mention feeds derived from them.
package topics

import (
	"errors"
	"sort"
	"time"

	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// defaultMentionLimit caps mention feeds when the caller does not ask
// for a specific page size.
const defaultMentionLimit = 50

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTopicNotFound     = errors.New("topic not found")
	ErrAlreadySubscribed = errors.New("already subscribed to this topic")
	ErrNotSubscribed     = errors.New("not subscribed to this topic")
	ErrNoKeywords        = errors.New("topic requires at least one keyword")
)

// TopicResponse is a topic plus the number of mentions recorded for it.
type TopicResponse struct {
	models.TopicModel
	MentionsCount int64 `json:"mentions_count"`
}

// SubscriptionResponse is a subscription plus the name of the topic it
// points at.
type SubscriptionResponse struct {
	models.TopicSubscriptionModel
	TopicName string `json:"topic_name"`
}

// MentionDetail is a mention joined with a short description of the
// content item it was detected in.
type MentionDetail struct {
	models.TopicMentionModel
	TopicName    string     `json:"topic_name"`
	ContentTitle string     `json:"content_title"`
	ContentDate  *time.Time `json:"content_date,omitempty"`
}

type Service struct {
	registry store.TopicRegistry
	content  store.ContentStore
	users    store.UserStore
	logger   *zap.Logger
}

func NewService(registry store.TopicRegistry, content store.ContentStore, users store.UserStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		content:  content,
		users:    users,
		logger:   logger.Named("TopicService"),
	}
}

type CreateTopicInput struct {
	Name        string
	Description string
	Keywords    []string
	UserID      string
	IsPublic    bool
}

func (s *Service) CreateTopic(in CreateTopicInput) (*TopicResponse, error) {
	if len(in.Keywords) == 0 {
		return nil, ErrNoKeywords
	}
	owner, err := s.users.GetUser(in.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}
	topic := models.TopicModel{
		Name:        in.Name,
		Description: in.Description,
		Keywords:    models.StringArray(in.Keywords),
		UserID:      in.UserID,
		IsPublic:    in.IsPublic,
	}
	if err := s.registry.CreateTopic(&topic); err != nil {
		return nil, err
	}
	s.logger.Info("topic created", zap.String("id", topic.ID), zap.String("name", topic.Name))
	return &TopicResponse{TopicModel: topic}, nil
}

func (s *Service) ListTopics(userID *string, isPublic *bool) ([]TopicResponse, error) {
	topics, err := s.registry.ListTopics(userID, isPublic)
	if err != nil {
		return nil, err
	}
	out := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		count, err := s.registry.MentionsCount(t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TopicResponse{TopicModel: t, MentionsCount: count})
	}
	return out, nil
}

func (s *Service) GetTopic(id string) (*TopicResponse, error) {
	topic, err := s.registry.GetTopic(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	count, err := s.registry.MentionsCount(id)
	if err != nil {
		return nil, err
	}
	return &TopicResponse{TopicModel: *topic, MentionsCount: count}, nil
}

type UpdateTopicInput struct {
	Name        *string
	Description *string
	Keywords    *[]string
	IsPublic    *bool
}

func (s *Service) UpdateTopic(id string, in UpdateTopicInput) (*TopicResponse, error) {
	if in.Keywords != nil && len(*in.Keywords) == 0 {
		return nil, ErrNoKeywords
	}
	topic, err := s.registry.GetTopic(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Keywords != nil {
		updates["keywords"] = models.StringArray(*in.Keywords)
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}
	if len(updates) > 0 {
		if err := s.registry.UpdateTopic(id, updates); err != nil {
			return nil, err
		}
	}
	return s.GetTopic(id)
}

func (s *Service) DeleteTopic(id string) error {
	topic, err := s.registry.GetTopic(id)
	if err != nil {
		return err
	}
	if topic == nil {
		return ErrTopicNotFound
	}
	return s.registry.DeleteTopic(id)
}

func (s *Service) Subscribe(userID, topicID string) (*SubscriptionResponse, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	topic, err := s.registry.GetTopic(topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	subscribed, err := s.registry.IsSubscribed(userID, topicID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		return nil, ErrAlreadySubscribed
	}
	sub, err := s.registry.Subscribe(userID, topicID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionResponse{TopicSubscriptionModel: *sub, TopicName: topic.Name}, nil
}

func (s *Service) Unsubscribe(userID, topicID string) error {
	subscribed, err := s.registry.IsSubscribed(userID, topicID)
	if err != nil {
		return err
	}
	if !subscribed {
		return ErrNotSubscribed
	}
	return s.registry.Unsubscribe(userID, topicID)
}

func (s *Service) ListSubscriptions(userID string) ([]SubscriptionResponse, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	subs, err := s.registry.ListSubscriptions(userID)
	if err != nil {
		return nil, err
	}
	out := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		name := ""
		if topic, err := s.registry.GetTopic(sub.TopicID); err == nil && topic != nil {
			name = topic.Name
		}
		out = append(out, SubscriptionResponse{TopicSubscriptionModel: sub, TopicName: name})
	}
	return out, nil
}

// Mentions returns the mention feed, optionally filtered by topic and
// notification state, joined with content details.
func (s *Service) Mentions(topicID *string, notified *bool, limit int) ([]MentionDetail, error) {
	if topicID != nil {
		topic, err := s.registry.GetTopic(*topicID)
		if err != nil {
			return nil, err
		}
		if topic == nil {
			return nil, ErrTopicNotFound
		}
	}
	if limit <= 0 {
		limit = defaultMentionLimit
	}
	mentions, err := s.registry.ListMentions(topicID, notified, limit)
	if err != nil {
		return nil, err
	}
	return s.enrich(mentions), nil
}

// UserMentions returns the mention feed across every topic the user
// owns or subscribes to, newest first.
func (s *Service) UserMentions(userID string, limit int) ([]MentionDetail, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if limit <= 0 {
		limit = defaultMentionLimit
	}

	topicIDs := map[string]bool{}
	owned, err := s.registry.ListTopics(&userID, nil)
	if err != nil {
		return nil, err
	}
	for _, t := range owned {
		topicIDs[t.ID] = true
	}
	subs, err := s.registry.ListSubscriptions(userID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		topicIDs[sub.TopicID] = true
	}

	var mentions []models.TopicMentionModel
	for id := range topicIDs {
		id := id
		batch, err := s.registry.ListMentions(&id, nil, limit)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, batch...)
	}
	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].DetectedAt.After(mentions[j].DetectedAt)
	})
	if len(mentions) > limit {
		mentions = mentions[:limit]
	}
	return s.enrich(mentions), nil
}

func (s *Service) enrich(mentions []models.TopicMentionModel) []MentionDetail {
	nameCache := map[string]string{}
	out := make([]MentionDetail, 0, len(mentions))
	for _, m := range mentions {
		d := MentionDetail{TopicMentionModel: m}
		name, ok := nameCache[m.TopicID]
		if !ok {
			if topic, err := s.registry.GetTopic(m.TopicID); err == nil && topic != nil {
				name = topic.Name
			}
			nameCache[m.TopicID] = name
		}
		d.TopicName = name

		switch m.ContentType {
		case models.ContentTypePlenarySession:
			if sess, err := s.content.GetSession(m.ContentID); err == nil && sess != nil {
				d.ContentTitle = sess.Title
				date := sess.Date
				d.ContentDate = &date
			}
		case models.ContentTypeTweet:
			if tweet, err := s.content.GetTweet(m.ContentID); err == nil && tweet != nil {
				d.ContentTitle = "@" + tweet.UserHandle
				posted := tweet.PostedAt
				d.ContentDate = &posted
			}
		}
		out = append(out, d)
	}
	return out
}
