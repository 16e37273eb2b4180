package analyzer

import (
	"strings"
	"unicode"

	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

// snippetWindow is the number of context characters kept on each side of a
// matched term.
const snippetWindow = 75

// Detector matches analyzed content against every registered topic,
// regardless of owner or visibility.
type Detector struct {
	registry store.TopicRegistry
	logger   *zap.Logger
}

func NewDetector(registry store.TopicRegistry, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{registry: registry, logger: logger.Named("MentionDetector")}
}

// Detect scans all topics against one content item and persists a mention
// per matched topic. A topic that already has a mention for this content
// item is skipped, so repeated analysis runs do not multiply the feed.
func (d *Detector) Detect(contentID, contentType, body, title string, llmTopics, llmKeywords []string) ([]models.TopicMentionModel, error) {
	topics, err := d.registry.ListTopics(nil, nil)
	if err != nil {
		return nil, err
	}

	var detected []models.TopicMentionModel
	for i := range topics {
		topic := topics[i]
		term, ok := matchTopic(&topic, body, title, llmTopics, llmKeywords)
		if !ok {
			continue
		}

		exists, err := d.registry.HasMention(topic.ID, contentID)
		if err != nil {
			d.logger.Warn("mention lookup failed",
				zap.String("topic_id", topic.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		snippet := contextSnippet(body, term)
		if snippet == "" {
			snippet = contextSnippet(title, term)
		}
		mention := models.TopicMentionModel{
			TopicID:        topic.ID,
			ContentID:      contentID,
			ContentType:    contentType,
			MentionContext: snippet,
		}
		if err := d.registry.InsertMention(&mention); err != nil {
			d.logger.Warn("failed to insert mention",
				zap.String("topic_id", topic.ID), zap.Error(err))
			continue
		}
		d.logger.Info("topic mention detected",
			zap.String("topic", topic.Name),
			zap.String("content_id", contentID),
			zap.String("matched_term", term))
		detected = append(detected, mention)
	}
	return detected, nil
}

// matchTopic returns the first matched term for a topic against the content.
// Match rules, in order: topic keyword in body or title, topic name in body
// or title, an LLM-extracted topic equal to the name or containing a keyword,
// the same against LLM-extracted keywords. All comparisons are
// case-insensitive.
func matchTopic(topic *models.TopicModel, body, title string, llmTopics, llmKeywords []string) (string, bool) {
	lowerBody := strings.ToLower(body)
	lowerTitle := strings.ToLower(title)
	lowerName := strings.ToLower(topic.Name)

	for _, kw := range topic.Keywords {
		if kw == "" {
			continue
		}
		lowerKw := strings.ToLower(kw)
		if strings.Contains(lowerBody, lowerKw) || strings.Contains(lowerTitle, lowerKw) {
			return kw, true
		}
	}
	if topic.Name != "" && (strings.Contains(lowerBody, lowerName) || strings.Contains(lowerTitle, lowerName)) {
		return topic.Name, true
	}
	for _, label := range llmTopics {
		if term, ok := matchLabel(label, lowerName, topic); ok {
			return term, true
		}
	}
	for _, label := range llmKeywords {
		if term, ok := matchLabel(label, lowerName, topic); ok {
			return term, true
		}
	}
	return "", false
}

func matchLabel(label, lowerName string, topic *models.TopicModel) (string, bool) {
	lowerLabel := strings.ToLower(label)
	if lowerLabel == "" {
		return "", false
	}
	if lowerLabel == lowerName {
		return topic.Name, true
	}
	for _, kw := range topic.Keywords {
		if kw != "" && strings.Contains(lowerLabel, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// contextSnippet extracts the text around the first case-insensitive
// occurrence of term, trimmed to snippetWindow characters on each side with
// "..." marking truncated ends. Returns "" when the term does not occur in
// the body (a topic can match through LLM labels alone). The window is
// counted in runes so a cut never lands inside a multibyte character.
func contextSnippet(body, term string) string {
	if term == "" {
		return ""
	}
	bodyRunes := []rune(body)
	termRunes := []rune(term)
	idx := indexFold(bodyRunes, termRunes)
	if idx < 0 {
		return ""
	}

	start := idx - snippetWindow
	end := idx + len(termRunes) + snippetWindow
	prefix, suffix := "", ""
	if start <= 0 {
		start = 0
	} else {
		prefix = "..."
	}
	if end >= len(bodyRunes) {
		end = len(bodyRunes)
	} else {
		suffix = "..."
	}
	return prefix + string(bodyRunes[start:end]) + suffix
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of term in text, or -1. Folding happens per rune, so positions in text stay
// aligned even when lowercasing changes a rune's encoded length.
func indexFold(text, term []rune) int {
	if len(term) == 0 || len(term) > len(text) {
		return -1
	}
	for i := 0; i+len(term) <= len(text); i++ {
		match := true
		for j := range term {
			if unicode.ToLower(text[i+j]) != unicode.ToLower(term[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
