package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/plenumwatch/core/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ListTopics(userID *string, isPublic *bool) ([]models.TopicModel, error) {
	q := s.db.Order("created_at ASC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if isPublic != nil {
		q = q.Where("is_public = ?", *isPublic)
	}
	var topics []models.TopicModel
	return topics, q.Find(&topics).Error
}

func (s *Store) GetTopic(id string) (*models.TopicModel, error) {
	var t models.TopicModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTopic(t *models.TopicModel) error {
	return s.db.Create(t).Error
}

func (s *Store) UpdateTopic(id string, updates map[string]interface{}) error {
	res := s.db.Model(&models.TopicModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update topic: no row with id %s", id)
	}
	return nil
}

func (s *Store) DeleteTopic(id string) error {
	return s.db.Delete(&models.TopicModel{}, "id = ?", id).Error
}

func (s *Store) Subscribe(userID, topicID string) (*models.TopicSubscriptionModel, error) {
	sub := models.TopicSubscriptionModel{UserID: userID, TopicID: topicID}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) Unsubscribe(userID, topicID string) error {
	return s.db.
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Delete(&models.TopicSubscriptionModel{}).Error
}

func (s *Store) IsSubscribed(userID, topicID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.TopicSubscriptionModel{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) ListSubscriptions(userID string) ([]models.TopicSubscriptionModel, error) {
	var subs []models.TopicSubscriptionModel
	return subs, s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&subs).Error
}

func (s *Store) InsertMention(m *models.TopicMentionModel) error {
	if m.DetectedAt.IsZero() {
		m.DetectedAt = time.Now().UTC()
	}
	return s.db.Create(m).Error
}

func (s *Store) HasMention(topicID, contentID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.TopicMentionModel{}).
		Where("topic_id = ? AND content_id = ?", topicID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) ListMentions(topicID *string, notified *bool, limit int) ([]models.TopicMentionModel, error) {
	q := s.db.Order("detected_at DESC")
	if topicID != nil {
		q = q.Where("topic_id = ?", *topicID)
	}
	if notified != nil {
		q = q.Where("is_notified = ?", *notified)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var mentions []models.TopicMentionModel
	return mentions, q.Find(&mentions).Error
}

func (s *Store) MentionsCount(topicID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.TopicMentionModel{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}

func (s *Store) InsertTopicAnalysis(a *models.TopicAnalysisModel) error {
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = time.Now().UTC()
	}
	return s.db.Create(a).Error
}

func (s *Store) ListTopicAnalyses(topicID string) ([]models.TopicAnalysisModel, error) {
	var analyses []models.TopicAnalysisModel
	return analyses, s.db.
		Where("topic_id = ?", topicID).
		Order("analyzed_at DESC").
		Find(&analyses).Error
}

func (s *Store) CountTopicAnalyses(topicID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.TopicAnalysisModel{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}
