package analyzer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store/storetest"
)

func topicWith(id, name string, keywords ...string) models.TopicModel {
	t := models.TopicModel{Name: name, Keywords: models.StringArray(keywords)}
	t.ID = id
	return t
}

func TestDetectMatchesKeywordCaseInsensitively(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "Energy", "energy"),
	}}
	d := NewDetector(st, nil)

	detected, err := d.Detect("c1", models.ContentTypePlenarySession,
		"THE ENERGY POLICY DEBATE CONTINUED TODAY", "Session", nil, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("detected %d mentions, want 1", len(detected))
	}
	if detected[0].TopicID != "t1" || detected[0].ContentID != "c1" {
		t.Errorf("mention = %+v", detected[0])
	}
	if !strings.Contains(strings.ToLower(detected[0].MentionContext), "energy") {
		t.Errorf("MentionContext = %q, want the matched term in context", detected[0].MentionContext)
	}
}

func TestDetectMatchesTopicNameWhenNoKeywordHits(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "carbon tax", "emissions trading"),
	}}
	d := NewDetector(st, nil)

	detected, err := d.Detect("c1", models.ContentTypeTweet,
		"The Carbon Tax debate continues in parliament.", "@mp", nil, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("detected %d mentions, want 1", len(detected))
	}
}

func TestDetectMatchesThroughModelLabels(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "Healthcare Reform", "hospital funding"),
	}}
	d := NewDetector(st, nil)

	// Body never names the topic; only the extracted labels do.
	detected, err := d.Detect("c1", models.ContentTypeTweet,
		"The minister spoke at length today.", "@mp",
		[]string{"healthcare reform"}, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("detected %d mentions, want 1", len(detected))
	}
	if detected[0].MentionContext != "" {
		t.Errorf("MentionContext = %q, want empty for a label-only match", detected[0].MentionContext)
	}
}

func TestDetectSkipsExistingMention(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "Energy", "energy"),
	}}
	d := NewDetector(st, nil)

	body := "energy policy was discussed"
	if _, err := d.Detect("c1", models.ContentTypePlenarySession, body, "", nil, nil); err != nil {
		t.Fatal(err)
	}
	detected, err := d.Detect("c1", models.ContentTypePlenarySession, body, "", nil, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 0 {
		t.Errorf("second run detected %d mentions, want 0", len(detected))
	}
	if len(st.Mentions) != 1 {
		t.Errorf("store holds %d mentions, want 1", len(st.Mentions))
	}
}

func TestDetectMatchesAgainstTitle(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "Pensions", "pension reform"),
	}}
	d := NewDetector(st, nil)

	detected, err := d.Detect("c1", models.ContentTypePlenarySession,
		"The chamber voted on three amendments.",
		"Debate on Pension Reform", nil, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("detected %d mentions, want 1", len(detected))
	}
	if !strings.Contains(strings.ToLower(detected[0].MentionContext), "pension reform") {
		t.Errorf("MentionContext = %q, want the title snippet", detected[0].MentionContext)
	}
}

func TestDetectScansAllTopics(t *testing.T) {
	st := &storetest.MemStore{Topics: []models.TopicModel{
		topicWith("t1", "Energy", "solar"),
		topicWith("t2", "Budget", "deficit"),
		topicWith("t3", "Defense", "nato"),
	}}
	d := NewDetector(st, nil)

	detected, err := d.Detect("c1", models.ContentTypePlenarySession,
		"Debate covered solar subsidies and the growing deficit.", "", nil, nil)
	if err != nil {
		t.Fatalf("Detect returned %v", err)
	}
	if len(detected) != 2 {
		t.Fatalf("detected %d mentions, want 2", len(detected))
	}
}

func TestContextSnippet(t *testing.T) {
	long := strings.Repeat("a", 200) + "TARGET" + strings.Repeat("b", 200)

	tests := []struct {
		name string
		body string
		term string
		want string
	}{
		{
			name: "term absent",
			body: "nothing here",
			term: "target",
			want: "",
		},
		{
			name: "short body kept whole",
			body: "the target is here",
			term: "target",
			want: "the target is here",
		},
		{
			name: "truncated both sides",
			body: long,
			term: "target",
			want: "..." + strings.Repeat("a", 75) + "TARGET" + strings.Repeat("b", 75) + "...",
		},
		{
			name: "match at start",
			body: "TARGET" + strings.Repeat("b", 200),
			term: "target",
			want: "TARGET" + strings.Repeat("b", 75) + "...",
		},
		{
			name: "window counts runes, not bytes",
			body: strings.Repeat("ä", 100) + "Steuer" + strings.Repeat("ö", 100),
			term: "steuer",
			want: "..." + strings.Repeat("ä", 75) + "Steuer" + strings.Repeat("ö", 75) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contextSnippet(tt.body, tt.term)
			if got != tt.want {
				t.Errorf("contextSnippet() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("contextSnippet() produced invalid UTF-8: %q", got)
			}
		})
	}
}
