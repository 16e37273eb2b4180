package deepanalysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/plenumwatch/core/internal/llm"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store/storetest"
)

// stubLLM serves canned Complete replies; the other client methods are
// unused here.
type stubLLM struct {
	reply string
	err   error

	gotPrompt string
	gotOpts   llm.CompletionOptions
}

func (s *stubLLM) AnalyzeTopics(ctx context.Context, text string) (*llm.TopicExtraction, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLLM) CompareTopics(ctx context.Context, first, second string) (*llm.Comparison, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLLM) Complete(ctx context.Context, systemPrompt, prompt string, opts llm.CompletionOptions) (string, error) {
	s.gotPrompt = prompt
	s.gotOpts = opts
	return s.reply, s.err
}

func seedTopic(st *storetest.MemStore, id, userID, name string, keywords ...string) models.TopicModel {
	topic := models.TopicModel{Name: name, UserID: userID, Keywords: models.StringArray(keywords)}
	topic.ID = id
	st.Topics = append(st.Topics, topic)
	return topic
}

func newTestService(st *storetest.MemStore, model llm.Client) *Service {
	return NewService(st, st, st, model, nil)
}

func TestAnalyzeTopicStoresParsedReport(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate", "solar", "emissions")
	st.InsertSession(&models.PlenarySessionModel{
		Title:   "Climate Debate",
		Date:    time.Now().UTC(),
		Content: "Long transcript about emissions.",
	})
	model := &stubLLM{reply: `{
		"relevant_extracts": [{"source": "session-1", "text": "about emissions"}],
		"opinions": "split along party lines",
		"summary": "emissions targets debated",
		"context": "upcoming election",
		"sentiment": "NEGATIVE",
		"key_stakeholders": ["Green Party"],
		"topics": ["emissions"],
		"priority": "high"
	}`}
	svc := newTestService(st, model)

	record, err := svc.AnalyzeTopic(context.Background(), "t1")
	if err != nil {
		t.Fatalf("AnalyzeTopic returned %v", err)
	}
	if record == nil {
		t.Fatal("AnalyzeTopic returned nil for existing topic")
	}
	if record.Sentiment != llm.SentimentNegative {
		t.Errorf("Sentiment = %q, want normalized negative", record.Sentiment)
	}
	if record.Priority != "high" {
		t.Errorf("Priority = %q", record.Priority)
	}
	if record.ContentID != "session-1" || record.ContentType != models.ContentTypePlenarySession {
		t.Errorf("anchor = %s/%s, want the first session", record.ContentID, record.ContentType)
	}
	if len(record.Extracts) != 1 || record.Extracts[0].Source != "session-1" {
		t.Errorf("Extracts = %+v", record.Extracts)
	}
	if len(st.Reports) != 1 {
		t.Errorf("stored reports = %d, want 1", len(st.Reports))
	}
	if model.gotOpts.Temperature != 0.1 || model.gotOpts.MaxTokens != 4096 {
		t.Errorf("completion opts = %+v", model.gotOpts)
	}
}

func TestAnalyzeTopicKeepsRawTextOnUnparseableReply(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate", "solar", "emissions")
	model := &stubLLM{reply: "The model refused to produce JSON."}
	svc := newTestService(st, model)

	record, err := svc.AnalyzeTopic(context.Background(), "t1")
	if err != nil {
		t.Fatalf("AnalyzeTopic returned %v, want fallback record", err)
	}
	if record.RawResponse != model.reply {
		t.Errorf("RawResponse = %q, want the raw reply kept", record.RawResponse)
	}
	if record.Sentiment != llm.SentimentNeutral {
		t.Errorf("Sentiment = %q, want neutral fallback", record.Sentiment)
	}
	if record.Priority != PriorityRoutine {
		t.Errorf("Priority = %q, want routine", record.Priority)
	}
	want := models.StringArray{"solar", "emissions"}
	if len(record.Topics) != 2 || record.Topics[0] != want[0] || record.Topics[1] != want[1] {
		t.Errorf("Topics = %v, want the topic keywords %v", record.Topics, want)
	}
	// No content sampled, so the anchor is a generated placeholder.
	if record.ContentType != models.ContentTypeGenerated || record.ContentID == "" {
		t.Errorf("anchor = %s/%s, want a generated id", record.ContentID, record.ContentType)
	}
}

func TestAnalyzeTopicMissingTopic(t *testing.T) {
	svc := newTestService(storetest.New(), &stubLLM{})

	record, err := svc.AnalyzeTopic(context.Background(), "ghost")
	if err != nil || record != nil {
		t.Fatalf("AnalyzeTopic = (%+v, %v), want (nil, nil)", record, err)
	}
}

func TestAnalyzeTopicTransportErrorPropagates(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate")
	svc := newTestService(st, &stubLLM{err: errors.New("gateway timeout")})

	if _, err := svc.AnalyzeTopic(context.Background(), "t1"); err == nil {
		t.Fatal("AnalyzeTopic = nil error on transport failure")
	}
	if len(st.Reports) != 0 {
		t.Errorf("report stored despite transport failure")
	}
}

func TestAnalyzeAllForUserSkipsTopicsWithExistingReports(t *testing.T) {
	st := storetest.New()
	st.Users = []models.UserModel{{Email: "a@example.com"}}
	st.Users[0].ID = "u1"
	analyzed := seedTopic(st, "t1", "u1", "Climate")
	seedTopic(st, "t2", "u1", "Budget", "deficit")
	st.InsertTopicAnalysis(&models.TopicAnalysisModel{TopicID: analyzed.ID})

	model := &stubLLM{reply: `{"summary": "ok", "sentiment": "neutral"}`}
	svc := newTestService(st, model)

	result, err := svc.AnalyzeAllForUser(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("AnalyzeAllForUser returned %v", err)
	}
	if result.Total != 2 || result.Skipped != 1 || result.Analyzed != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	for _, outcome := range result.Results {
		switch outcome.TopicID {
		case "t1":
			if outcome.Status != OutcomeSkipped {
				t.Errorf("t1 status = %q, want skipped", outcome.Status)
			}
		case "t2":
			if outcome.Status != OutcomeAnalyzed || outcome.AnalysisID == "" {
				t.Errorf("t2 outcome = %+v", outcome)
			}
		}
	}
}

func TestAnalyzeAllForUserReanalyzesWhenAsked(t *testing.T) {
	st := storetest.New()
	st.Users = []models.UserModel{{Email: "a@example.com"}}
	st.Users[0].ID = "u1"
	topic := seedTopic(st, "t1", "u1", "Climate")
	st.InsertTopicAnalysis(&models.TopicAnalysisModel{TopicID: topic.ID})

	model := &stubLLM{reply: `{"summary": "ok"}`}
	svc := newTestService(st, model)

	result, err := svc.AnalyzeAllForUser(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("AnalyzeAllForUser returned %v", err)
	}
	if result.Analyzed != 1 || result.Skipped != 0 {
		t.Errorf("result = %+v, want the existing topic re-analyzed", result)
	}
	if len(st.Reports) != 2 {
		t.Errorf("stored reports = %d, want 2", len(st.Reports))
	}
}

func TestAnalyzeAllForUserContinuesPastFailures(t *testing.T) {
	st := storetest.New()
	st.Users = []models.UserModel{{Email: "a@example.com"}}
	st.Users[0].ID = "u1"
	seedTopic(st, "t1", "u1", "Climate")
	seedTopic(st, "t2", "u1", "Budget")

	svc := newTestService(st, &stubLLM{err: errors.New("rate limited")})

	result, err := svc.AnalyzeAllForUser(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("AnalyzeAllForUser returned %v", err)
	}
	if result.Failed != 2 || result.Analyzed != 0 {
		t.Errorf("result = %+v, want both topics failed", result)
	}
	for _, outcome := range result.Results {
		if outcome.Status != OutcomeFailed || outcome.Reason == "" {
			t.Errorf("outcome = %+v", outcome)
		}
	}
}

func TestAnalyzeAllForUserMissingUser(t *testing.T) {
	svc := newTestService(storetest.New(), &stubLLM{})

	result, err := svc.AnalyzeAllForUser(context.Background(), "ghost", true)
	if err != nil || result != nil {
		t.Fatalf("AnalyzeAllForUser = (%+v, %v), want (nil, nil)", result, err)
	}
}

func TestBuildPromptEmbedsTopicAndSample(t *testing.T) {
	topic := &models.TopicModel{Name: "Climate", Keywords: models.StringArray{"solar", "emissions"}}
	topic.ID = "t1"
	sessions := []models.PlenarySessionModel{{
		Title:   "Climate Debate",
		Date:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Content: strings.Repeat("x", 1500),
	}}
	tweets := []models.TweetModel{{
		UserHandle: "@mp",
		PostedAt:   time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Content:    "Short tweet about emissions.",
	}}

	prompt := buildPrompt(topic, sessions, tweets)

	if !strings.Contains(prompt, "Topic: Climate") {
		t.Error("prompt missing topic name")
	}
	if !strings.Contains(prompt, "Description: N/A") {
		t.Error("prompt missing N/A for empty description")
	}
	if !strings.Contains(prompt, "Keywords: solar, emissions") {
		t.Error("prompt missing keywords")
	}
	if !strings.Contains(prompt, "[Session 1] Climate Debate (2026-03-14)") {
		t.Error("prompt missing session header")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 1000)+"...") {
		t.Error("session content not truncated to the excerpt length")
	}
	if strings.Contains(prompt, strings.Repeat("x", 1001)) {
		t.Error("session content longer than the excerpt length")
	}
	if !strings.Contains(prompt, "Short tweet about emissions.") {
		t.Error("prompt missing tweet content")
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	in := strings.Repeat("ä", 10)
	if got := truncate(in, 5); got != strings.Repeat("ä", 5)+"..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q, want input unchanged", got)
	}
}
