package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/plenumwatch/core/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ListSessions(fromDate *time.Time, analyzed *bool) ([]models.PlenarySessionModel, error) {
	q := s.db.Order("date DESC")
	if fromDate != nil {
		q = q.Where("date >= ?", *fromDate)
	}
	if analyzed != nil {
		q = q.Where("analyzed = ?", *analyzed)
	}
	var sessions []models.PlenarySessionModel
	return sessions, q.Find(&sessions).Error
}

func (s *Store) GetSession(id string) (*models.PlenarySessionModel, error) {
	var m models.PlenarySessionModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertSession(m *models.PlenarySessionModel) error {
	if m.CollectedAt.IsZero() {
		m.CollectedAt = time.Now().UTC()
	}
	return s.db.Create(m).Error
}

func (s *Store) UpdateSessionAnalysis(id string, analyzed bool, result *models.AnalysisResult) error {
	res := s.db.Model(&models.PlenarySessionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"analyzed":        analyzed,
			"analysis_result": serialized(result),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports changed rows, not matched rows, so a no-op
		// update looks the same as a missing row here.
		exists, err := s.rowExists(&models.PlenarySessionModel{}, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("update session analysis: no row with id %s", id)
		}
	}
	return nil
}

func (s *Store) ListTweets(fromDate *time.Time, analyzed *bool) ([]models.TweetModel, error) {
	q := s.db.Order("posted_at DESC")
	if fromDate != nil {
		q = q.Where("posted_at >= ?", *fromDate)
	}
	if analyzed != nil {
		q = q.Where("analyzed = ?", *analyzed)
	}
	var tweets []models.TweetModel
	return tweets, q.Find(&tweets).Error
}

func (s *Store) GetTweet(id string) (*models.TweetModel, error) {
	var m models.TweetModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertTweet(m *models.TweetModel) error {
	if m.CollectedAt.IsZero() {
		m.CollectedAt = time.Now().UTC()
	}
	return s.db.Create(m).Error
}

func (s *Store) UpdateTweetAnalysis(id string, analyzed bool, result *models.AnalysisResult) error {
	res := s.db.Model(&models.TweetModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"analyzed":        analyzed,
			"analysis_result": serialized(result),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := s.rowExists(&models.TweetModel{}, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("update tweet analysis: no row with id %s", id)
		}
	}
	return nil
}

func (s *Store) rowExists(model interface{}, id string) (bool, error) {
	var n int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) LatestTimestamp(contentType string) (*time.Time, error) {
	switch contentType {
	case models.ContentTypePlenarySession:
		var m models.PlenarySessionModel
		if err := s.db.Order("date DESC").First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &m.Date, nil
	case models.ContentTypeTweet:
		var m models.TweetModel
		if err := s.db.Order("posted_at DESC").First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &m.PostedAt, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}
}

func (s *Store) InsertContentAnalysis(a *models.ContentAnalysisModel) error {
	if a.AnalysisDate.IsZero() {
		a.AnalysisDate = time.Now().UTC()
	}
	return s.db.Create(a).Error
}

// serialized renders the payload column value. GORM's serializer only runs on
// struct writes, not map updates, so the JSON is produced here.
func serialized(result *models.AnalysisResult) interface{} {
	if result == nil {
		return nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	return string(b)
}
