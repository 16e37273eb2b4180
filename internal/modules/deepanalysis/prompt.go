package deepanalysis

import (
	"fmt"
	"strings"

	"github.com/plenumwatch/core/internal/models"
)

const (
	// Bounded content sample embedded in one deep-analysis prompt.
	maxSessions = 50
	maxTweets   = 100
	// Sessions are long; only the head of each transcript is embedded.
	sessionExcerptLen = 1000
)

const promptInstruction = `You are a political analyst assistant tasked with finding and analyzing content related to specific political topics.

TASK:
1. Find and extract ALL relevant text from the plenary sessions and tweets that is connected to the given topic.
2. For each relevant extract, provide the source (session or tweet ID).
3. Analyze what political opinions, positions, and sentiments are expressed about this topic.
4. Summarize the overall discourse around this topic.
5. Provide context about why this topic is politically significant based on the content.

Format your response as a structured JSON with the following keys:
- "relevant_extracts": List of found relevant text segments with source IDs
- "opinions": Analysis of different political opinions expressed
- "summary": Overall summary of discourse
- "context": Political context and significance
- "sentiment": Overall sentiment (positive, negative, neutral, mixed)
- "key_stakeholders": Key politicians or parties mentioned in relation to the topic`

// buildPrompt renders the topic details plus the bounded content sample
// into a single analysis prompt.
func buildPrompt(topic *models.TopicModel, sessions []models.PlenarySessionModel, tweets []models.TweetModel) string {
	var sb strings.Builder

	sb.WriteString(promptInstruction)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Topic: %s\n", topic.Name)
	description := topic.Description
	if description == "" {
		description = "N/A"
	}
	fmt.Fprintf(&sb, "Description: %s\n", description)
	fmt.Fprintf(&sb, "Keywords: %s\n\n", strings.Join(topic.Keywords, ", "))

	sb.WriteString("THE CONTENT TO ANALYZE:\n\n")

	sb.WriteString("--- PLENARY SESSIONS ---\n")
	for i := range sessions {
		session := &sessions[i]
		fmt.Fprintf(&sb, "[Session %d] %s (%s)\n", i+1, session.Title, session.Date.Format("2006-01-02"))
		fmt.Fprintf(&sb, "Content: %s\n\n", truncate(session.Content, sessionExcerptLen))
	}

	sb.WriteString("--- TWEETS ---\n")
	for i := range tweets {
		tweet := &tweets[i]
		fmt.Fprintf(&sb, "[Tweet %d] %s (%s)\n", i+1, tweet.UserHandle, tweet.PostedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(&sb, "Content: %s\n\n", tweet.Content)
	}

	return sb.String()
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
