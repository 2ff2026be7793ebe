package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type stubSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func newTestClient(t *testing.T) (*Client, *asynq.Inspector) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := stubSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "offertes"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = inspector.Close() })

	return client, inspector
}

func TestEnqueueQuoteSendEmail(t *testing.T) {
	client, inspector := newTestClient(t)

	payload := QuoteSendEmailPayload{
		QuoteID:        uuid.NewString(),
		OrganizationID: uuid.NewString(),
	}
	if err := client.EnqueueQuoteSendEmail(context.Background(), payload); err != nil {
		t.Fatalf("EnqueueQuoteSendEmail: %v", err)
	}

	pending, err := inspector.ListPendingTasks("offertes")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending tasks = %d, want 1", len(pending))
	}
	if pending[0].Type != TaskQuoteSendEmail {
		t.Errorf("task type = %q, want %q", pending[0].Type, TaskQuoteSendEmail)
	}

	parsed, err := ParseQuoteSendEmailPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if parsed != payload {
		t.Errorf("payload round-trip = %+v, want %+v", parsed, payload)
	}
}

func TestSubscribeQuoteEventsEnqueuesOnAccept(t *testing.T) {
	client, inspector := newTestClient(t)

	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	client.SubscribeQuoteEvents(bus, log)

	err := bus.PublishSync(context.Background(), events.QuoteAccepted{
		BaseEvent:      events.NewBaseEvent(),
		QuoteID:        uuid.New(),
		OrganizationID: uuid.New(),
		QuoteNumber:    "OFF-2026-0001",
		CustomerName:   "Fam. Jansen",
		CustomerEmail:  "jansen@example.com",
		TotalInclVat:   1452,
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	pending, err := inspector.ListPendingTasks("offertes")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending tasks = %d, want 2 (accepted mail + archive)", len(pending))
	}

	types := map[string]bool{}
	for _, task := range pending {
		types[task.Type] = true
	}
	if !types[TaskQuoteAcceptedEmail] || !types[TaskQuoteArchive] {
		t.Errorf("unexpected task types: %v", types)
	}
}

type fakeExpirer struct {
	calls atomic.Int32
	count int
	err   error
}

func (f *fakeExpirer) ExpireOverdue(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return f.count, f.err
}

func TestVerloopSweeperRunsImmediately(t *testing.T) {
	expirer := &fakeExpirer{count: 3}
	sweeper := NewVerloopSweeper(expirer, logger.New("development"), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for expirer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestVerloopSweeperSurvivesErrors(t *testing.T) {
	expirer := &fakeExpirer{err: errors.New("db down")}
	sweeper := NewVerloopSweeper(expirer, logger.New("development"), time.Hour)

	// A failing sweep must not panic or abort Run.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for expirer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
