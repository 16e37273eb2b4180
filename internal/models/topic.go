package models

import "time"

// TopicModel is a user-defined named concept with keywords, used both as a
// mention filter and as a deep-analysis target.
type TopicModel struct {
	Base
	Name        string      `json:"name"        gorm:"index;not null"`
	Description string      `json:"description" gorm:"type:text"`
	Keywords    StringArray `json:"keywords"    gorm:"type:longtext;not null"`
	UserID      string      `json:"user_id"     gorm:"index;not null"`
	IsPublic    bool        `json:"is_public"   gorm:"default:false"`
}

func (TopicModel) TableName() string { return "topics" }

// TopicSubscriptionModel links a user to a topic they follow.
type TopicSubscriptionModel struct {
	Base
	UserID  string `json:"user_id"  gorm:"uniqueIndex:idx_user_topic;not null"`
	TopicID string `json:"topic_id" gorm:"uniqueIndex:idx_user_topic;not null"`
}

func (TopicSubscriptionModel) TableName() string { return "topic_subscriptions" }

// TopicMentionModel records a detected association between a topic and a
// content item. Written only by the analyzer's mention-detection step.
type TopicMentionModel struct {
	Base
	TopicID        string    `json:"topic_id"        gorm:"index;not null"`
	ContentID      string    `json:"content_id"      gorm:"index;not null"`
	ContentType    string    `json:"content_type"    gorm:"not null"`
	MentionContext string    `json:"mention_context" gorm:"type:text"`
	DetectedAt     time.Time `json:"detected_at"`
	IsNotified     bool      `json:"is_notified"     gorm:"index;default:false"`
}

func (TopicMentionModel) TableName() string { return "topic_mentions" }
