package models

import "time"

// ContentAnalysisModel is the lightweight per-item record written after LLM
// topic extraction, independent of any user topic.
type ContentAnalysisModel struct {
	Base
	ContentID    string      `json:"content_id"    gorm:"index;not null"`
	ContentType  string      `json:"content_type"  gorm:"not null"`
	Topics       StringArray `json:"topics"        gorm:"type:longtext"`
	Sentiment    string      `json:"sentiment"`
	Keywords     StringArray `json:"keywords"      gorm:"type:longtext"`
	AnalysisDate time.Time   `json:"analysis_date"`
}

func (ContentAnalysisModel) TableName() string { return "content_analyses" }

// Extract is one relevant text segment found by a deep analysis, with the
// session or tweet it came from.
type Extract struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// TopicAnalysisModel stores one deep-analysis report for a topic. Reports are
// append-only; a topic accumulates analyses over time.
type TopicAnalysisModel struct {
	Base
	TopicID      string      `json:"topic_id"      gorm:"index;not null"`
	ContentID    string      `json:"content_id"`
	ContentType  string      `json:"content_type"`
	Extracts     []Extract   `json:"relevant_extracts" gorm:"type:longtext;serializer:json"`
	Opinions     string      `json:"opinions"      gorm:"type:text"`
	Summary      string      `json:"summary"       gorm:"type:text"`
	Context      string      `json:"context"       gorm:"type:text"`
	Sentiment    string      `json:"sentiment"`
	Stakeholders StringArray `json:"key_stakeholders" gorm:"type:longtext"`
	Topics       StringArray `json:"topics"        gorm:"type:longtext"`
	Priority     string      `json:"priority"`
	RawResponse  string      `json:"raw_response,omitempty" gorm:"type:longtext"`
	AnalyzedAt   time.Time   `json:"analyzed_at"`
}

func (TopicAnalysisModel) TableName() string { return "topic_analyses" }
