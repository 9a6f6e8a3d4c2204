package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/catalog-system/internal/core/ports"
)

type recordingAuditService struct {
	mu      sync.Mutex
	byActor map[string][]string
	wg      sync.WaitGroup
}

func newRecordingAuditService(expected int) *recordingAuditService {
	s := &recordingAuditService{byActor: make(map[string][]string)}
	s.wg.Add(expected)
	return s
}

func (s *recordingAuditService) Record(_ context.Context, in ports.AuditEventInput) error {
	s.mu.Lock()
	s.byActor[in.Actor] = append(s.byActor[in.Actor], in.Target)
	s.mu.Unlock()
	s.wg.Done()
	return nil
}

func (s *recordingAuditService) wait(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for audit events")
	}
}

func TestDispatcher_PerActorOrdering(t *testing.T) {
	actors := []string{"alice", "bob", "carol"}
	const perActor = 50

	svc := newRecordingAuditService(len(actors) * perActor)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	// Interleave actors so ordering cannot come from enqueue grouping.
	for i := 0; i < perActor; i++ {
		for _, actor := range actors {
			d.Enqueue(ports.AuditEventInput{
				Actor:  actor,
				Action: "login",
				Target: strconv.Itoa(i),
			})
		}
	}
	svc.wait(t)

	for _, actor := range actors {
		got := svc.byActor[actor]
		if len(got) != perActor {
			t.Fatalf("actor %s: expected %d events, got %d", actor, perActor, len(got))
		}
		for i, target := range got {
			if target != strconv.Itoa(i) {
				t.Fatalf("actor %s: event %d out of order, got target %q", actor, i, target)
			}
		}
	}
}

func TestDispatcher_ShardStability(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for _, actor := range []string{"alice", "bob", "", "a-very-long-actor-name"} {
		first := d.shardIndex(actor)
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("actor %q: shard %d out of range", actor, first)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(actor); got != first {
				t.Fatalf("actor %q: shard changed from %d to %d", actor, first, got)
			}
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	svc := newRecordingAuditService(1)
	ctx, cancel := context.WithCancel(context.Background())

	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.AuditEventInput{Actor: "alice", Action: "login", Target: "0"})
	svc.wait(t)

	cancel()
	// Give the worker a moment to observe cancellation, then verify a
	// late event is no longer processed.
	time.Sleep(50 * time.Millisecond)
	d.Enqueue(ports.AuditEventInput{Actor: "alice", Action: "login", Target: "1"})
	time.Sleep(50 * time.Millisecond)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if n := len(svc.byActor["alice"]); n != 1 {
		t.Fatalf("expected no delivery after shutdown, got %d events", n)
	}
}
