package models

import "time"

// Content type discriminators used across analyses and mentions.
const (
	ContentTypePlenarySession = "plenary_session"
	ContentTypeTweet          = "tweet"
	// ContentTypeGenerated anchors a deep analysis when no real content
	// exists yet to attach it to.
	ContentTypeGenerated = "generated"
)

// AnalysisResult is the per-item payload produced by LLM topic extraction.
type AnalysisResult struct {
	Topics    []string `json:"topics"`
	Sentiment string   `json:"sentiment"`
	Keywords  []string `json:"keywords"`
	Summary   string   `json:"summary"`
}

// PlenarySessionModel stores a plenary session transcript. The text is
// immutable after collection; only the analysis fields are ever updated.
type PlenarySessionModel struct {
	Base
	Title          string          `json:"title"           gorm:"not null"`
	Date           time.Time       `json:"date"            gorm:"index;not null"`
	Content        string          `json:"content"         gorm:"type:longtext;not null"`
	SourceURL      string          `json:"source_url"`
	CollectedAt    time.Time       `json:"collected_at"`
	Analyzed       bool            `json:"analyzed"        gorm:"index;default:false"`
	AnalysisResult *AnalysisResult `json:"analysis_result" gorm:"type:longtext;serializer:json"`
}

func (PlenarySessionModel) TableName() string { return "plenary_sessions" }

// TweetModel stores a collected tweet.
type TweetModel struct {
	Base
	TweetID        string          `json:"tweet_id"        gorm:"uniqueIndex;not null"`
	UserHandle     string          `json:"user_handle"     gorm:"index;not null"`
	UserName       string          `json:"user_name"`
	Content        string          `json:"content"         gorm:"type:text;not null"`
	PostedAt       time.Time       `json:"posted_at"       gorm:"index;not null"`
	CollectedAt    time.Time       `json:"collected_at"`
	Analyzed       bool            `json:"analyzed"        gorm:"index;default:false"`
	AnalysisResult *AnalysisResult `json:"analysis_result" gorm:"type:longtext;serializer:json"`
}

func (TweetModel) TableName() string { return "tweets" }
