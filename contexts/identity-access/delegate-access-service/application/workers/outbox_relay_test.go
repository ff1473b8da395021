package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/adapters/memory"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

type capturePublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail != nil {
		return p.fail
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store) {
	t.Helper()
	now := store.Now()
	_, err := store.CreatePending(context.Background(), ports.CreatePendingInput{
		OutboxID:         "out-relay",
		FromOrgID:        "org-a",
		ToOrgID:          "org-b",
		RequestorAddress: "0xalice",
		AuthToken:        "tok-relay",
		CreatedAt:        now,
		ExpiresAt:        now.Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	seedOutbox(t, store)

	publisher := &capturePublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		Topic:     "delegate-access.events",
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "delegate-access.events" {
		t.Fatalf("published to %s", publisher.topics[0])
	}
	if publisher.events[0].EventType != "delegate_access.requested" {
		t.Fatalf("unexpected event type %s", publisher.events[0].EventType)
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d rows", len(pending))
	}
}

func TestOutboxRelayKeepsRowOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	seedOutbox(t, store)

	relay := OutboxRelay{
		Outbox:    store,
		Publisher: &capturePublisher{fail: errors.New("broker down")},
		Clock:     store,
		Topic:     "delegate-access.events",
	}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 1 {
		t.Fatalf("failed row must stay pending, got %d rows", len(pending))
	}
}

type stubSubscriber struct {
	topic   string
	group   string
	handler func(context.Context, ports.EventEnvelope) error
}

func (s *stubSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.topic = topic
	s.group = consumerGroup
	s.handler = handler
	return nil
}

type captureSender struct {
	emails []ports.Email
}

func (s *captureSender) Send(_ context.Context, email ports.Email) error {
	s.emails = append(s.emails, email)
	return nil
}

func TestNoticeRelayDeliversAcceptanceEmail(t *testing.T) {
	subscriber := &stubSubscriber{}
	sender := &captureSender{}
	relay := NoticeRelay{
		Subscriber:    subscriber,
		Sender:        sender,
		Topic:         "notifications.delegate-access",
		ConsumerGroup: "delegate-access-notice-cg",
	}
	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if subscriber.topic != "notifications.delegate-access" {
		t.Fatalf("subscribed to %s", subscriber.topic)
	}

	notice := ports.AccessRequestNotice{
		FromOrgID:      "org-a",
		ToOrgID:        "org-b",
		RecipientEmail: "bianca@beacon.dev",
		AcceptanceLink: "https://admin.jobdeck.dev/delegate-access?fromOrgId=org-a&toOrgId=org-b&authToken=tok",
	}
	data, _ := json.Marshal(notice)
	err := subscriber.handler(context.Background(), ports.EventEnvelope{
		EventID:   "evt-1",
		EventType: "delegate_access.notice",
		Data:      data,
	})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(sender.emails) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.emails))
	}
	if sender.emails[0].To != "bianca@beacon.dev" {
		t.Fatalf("email went to %s", sender.emails[0].To)
	}
	if !strings.Contains(sender.emails[0].Body, notice.AcceptanceLink) {
		t.Fatal("email body must carry the acceptance link")
	}
}

func TestNoticeRelayRejectsMalformedPayload(t *testing.T) {
	subscriber := &stubSubscriber{}
	relay := NoticeRelay{
		Subscriber:    subscriber,
		Sender:        &captureSender{},
		Topic:         "notifications.delegate-access",
		ConsumerGroup: "delegate-access-notice-cg",
	}
	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	err := subscriber.handler(context.Background(), ports.EventEnvelope{
		EventID: "evt-2",
		Data:    json.RawMessage("{"),
	})
	if err == nil {
		t.Fatal("expected decode failure")
	}
}
