package topics

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/store/storetest"
)

func seedUser(st *storetest.MemStore, id, email string) {
	u := models.UserModel{Email: email}
	u.ID = id
	st.Users = append(st.Users, u)
}

func seedTopic(st *storetest.MemStore, id, userID, name string, keywords ...string) {
	topic := models.TopicModel{Name: name, UserID: userID, Keywords: models.StringArray(keywords)}
	topic.ID = id
	st.Topics = append(st.Topics, topic)
}

func newTestService(st *storetest.MemStore) *Service {
	return NewService(st, st, st, nil)
}

func TestCreateTopicRequiresExistingOwner(t *testing.T) {
	st := storetest.New()
	svc := newTestService(st)

	_, err := svc.CreateTopic(CreateTopicInput{Name: "Climate", UserID: "ghost", Keywords: []string{"solar"}})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("CreateTopic error = %v, want ErrUserNotFound", err)
	}

	seedUser(st, "u1", "a@example.com")
	topic, err := svc.CreateTopic(CreateTopicInput{Name: "Climate", UserID: "u1", Keywords: []string{"solar"}})
	if err != nil {
		t.Fatalf("CreateTopic returned %v", err)
	}
	if topic.Name != "Climate" || topic.MentionsCount != 0 {
		t.Errorf("topic = %+v", topic)
	}
}

func TestCreateTopicRequiresKeywords(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	svc := newTestService(st)

	for _, keywords := range [][]string{nil, {}} {
		_, err := svc.CreateTopic(CreateTopicInput{Name: "Climate", UserID: "u1", Keywords: keywords})
		if !errors.Is(err, ErrNoKeywords) {
			t.Fatalf("CreateTopic(keywords=%v) error = %v, want ErrNoKeywords", keywords, err)
		}
	}
	if len(st.Topics) != 0 {
		t.Errorf("store holds %d topics, want 0", len(st.Topics))
	}
}

func TestUpdateTopicRejectsEmptyKeywords(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate", "solar")
	svc := newTestService(st)

	empty := []string{}
	if _, err := svc.UpdateTopic("t1", UpdateTopicInput{Keywords: &empty}); !errors.Is(err, ErrNoKeywords) {
		t.Fatalf("UpdateTopic error = %v, want ErrNoKeywords", err)
	}

	topic, err := svc.GetTopic("t1")
	if err != nil {
		t.Fatalf("GetTopic returned %v", err)
	}
	if diff := cmp.Diff(models.StringArray{"solar"}, topic.Keywords); diff != "" {
		t.Errorf("keywords changed (-want +got):\n%s", diff)
	}
}

func TestGetTopicIncludesMentionsCount(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate", "solar")
	st.InsertMention(&models.TopicMentionModel{TopicID: "t1", ContentID: "c1", ContentType: models.ContentTypeTweet})
	st.InsertMention(&models.TopicMentionModel{TopicID: "t1", ContentID: "c2", ContentType: models.ContentTypeTweet})
	svc := newTestService(st)

	topic, err := svc.GetTopic("t1")
	if err != nil {
		t.Fatalf("GetTopic returned %v", err)
	}
	if topic.MentionsCount != 2 {
		t.Errorf("MentionsCount = %d, want 2", topic.MentionsCount)
	}

	if _, err := svc.GetTopic("ghost"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("GetTopic(ghost) error = %v, want ErrTopicNotFound", err)
	}
}

func TestUpdateTopicAppliesOnlyProvidedFields(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate", "solar")
	svc := newTestService(st)

	newName := "Climate Policy"
	updated, err := svc.UpdateTopic("t1", UpdateTopicInput{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateTopic returned %v", err)
	}
	if updated.Name != "Climate Policy" {
		t.Errorf("Name = %q", updated.Name)
	}
	if diff := cmp.Diff(models.StringArray{"solar"}, updated.Keywords); diff != "" {
		t.Errorf("keywords changed without being provided (-want +got):\n%s", diff)
	}
}

func TestDeleteMissingTopic(t *testing.T) {
	svc := newTestService(storetest.New())
	if err := svc.DeleteTopic("ghost"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("DeleteTopic error = %v, want ErrTopicNotFound", err)
	}
}

func TestSubscribeRejectsDuplicates(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	seedTopic(st, "t1", "u2", "Climate")
	svc := newTestService(st)

	sub, err := svc.Subscribe("u1", "t1")
	if err != nil {
		t.Fatalf("Subscribe returned %v", err)
	}
	if sub.TopicName != "Climate" {
		t.Errorf("TopicName = %q", sub.TopicName)
	}

	if _, err := svc.Subscribe("u1", "t1"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("duplicate Subscribe error = %v, want ErrAlreadySubscribed", err)
	}
}

func TestSubscribeChecksBothSides(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	seedTopic(st, "t1", "u2", "Climate")
	svc := newTestService(st)

	if _, err := svc.Subscribe("ghost", "t1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Subscribe with unknown user = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.Subscribe("u1", "ghost"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Subscribe with unknown topic = %v, want ErrTopicNotFound", err)
	}
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	seedTopic(st, "t1", "u2", "Climate")
	svc := newTestService(st)

	if err := svc.Unsubscribe("u1", "t1"); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("Unsubscribe error = %v, want ErrNotSubscribed", err)
	}

	if _, err := svc.Subscribe("u1", "t1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Unsubscribe("u1", "t1"); err != nil {
		t.Fatalf("Unsubscribe returned %v", err)
	}
	if len(st.Subs) != 0 {
		t.Errorf("subscriptions left: %d", len(st.Subs))
	}
}

func TestMentionsJoinedWithContent(t *testing.T) {
	st := storetest.New()
	seedTopic(st, "t1", "u1", "Climate")
	st.InsertSession(&models.PlenarySessionModel{
		Title:   "Climate Debate",
		Date:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Content: "text",
	})
	st.InsertTweet(&models.TweetModel{TweetID: "x", UserHandle: "@mp", Content: "tweet", PostedAt: time.Now()})
	st.InsertMention(&models.TopicMentionModel{
		TopicID: "t1", ContentID: "session-1", ContentType: models.ContentTypePlenarySession,
	})
	st.InsertMention(&models.TopicMentionModel{
		TopicID: "t1", ContentID: "tweet-1", ContentType: models.ContentTypeTweet,
	})
	svc := newTestService(st)

	got, err := svc.Mentions(nil, nil, 0)
	if err != nil {
		t.Fatalf("Mentions returned %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d mentions, want 2", len(got))
	}
	for _, d := range got {
		if d.TopicName != "Climate" {
			t.Errorf("TopicName = %q", d.TopicName)
		}
		switch d.ContentType {
		case models.ContentTypePlenarySession:
			if d.ContentTitle != "Climate Debate" {
				t.Errorf("session ContentTitle = %q", d.ContentTitle)
			}
		case models.ContentTypeTweet:
			if d.ContentTitle != "@mp" {
				t.Errorf("tweet ContentTitle = %q", d.ContentTitle)
			}
		}
	}
}

func TestUserMentionsCoverOwnedAndSubscribedTopics(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	seedTopic(st, "owned", "u1", "Owned Topic")
	seedTopic(st, "followed", "u2", "Followed Topic")
	seedTopic(st, "unrelated", "u3", "Unrelated Topic")
	st.Subscribe("u1", "followed")

	now := time.Now().UTC()
	for i, topicID := range []string{"owned", "followed", "unrelated"} {
		st.InsertMention(&models.TopicMentionModel{
			TopicID:     topicID,
			ContentID:   "c1",
			ContentType: models.ContentTypeTweet,
			DetectedAt:  now.Add(time.Duration(i) * time.Minute),
		})
	}
	svc := newTestService(st)

	got, err := svc.UserMentions("u1", 0)
	if err != nil {
		t.Fatalf("UserMentions returned %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d mentions, want owned + subscribed only", len(got))
	}
	// Newest first.
	if !got[0].DetectedAt.After(got[1].DetectedAt) {
		t.Errorf("mentions not sorted newest first")
	}
	for _, d := range got {
		if d.TopicID == "unrelated" {
			t.Errorf("mention from unrelated topic included")
		}
	}
}

func TestUserMentionsHonorsLimit(t *testing.T) {
	st := storetest.New()
	seedUser(st, "u1", "a@example.com")
	seedTopic(st, "t1", "u1", "Climate")
	for i := 0; i < 5; i++ {
		st.InsertMention(&models.TopicMentionModel{
			TopicID: "t1", ContentID: string(rune('a' + i)), ContentType: models.ContentTypeTweet,
		})
	}
	svc := newTestService(st)

	got, err := svc.UserMentions("u1", 3)
	if err != nil {
		t.Fatalf("UserMentions returned %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d mentions, want limit of 3", len(got))
	}
}
