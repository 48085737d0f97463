package relay

import (
	"context"
	"testing"
	"time"

	"github.com/ytget/ytmedia/internal/model"
)

func TestRelay_DrainFIFO(t *testing.T) {
	r := New(8)
	ctx := context.Background()

	_ = r.Post(ctx, Busy{Busy: true})
	_ = r.Post(ctx, Log{Line: "one"})
	r.Offer(Progress{Fraction: 0.5})
	_ = r.Post(ctx, Log{Line: "two"})

	var got []Update
	n := r.Drain(func(u Update) { got = append(got, u) })
	if n != 4 || len(got) != 4 {
		t.Fatalf("Expected 4 updates, got %d", n)
	}
	if _, ok := got[0].(Busy); !ok {
		t.Errorf("Expected Busy first, got %T", got[0])
	}
	if l, ok := got[1].(Log); !ok || l.Line != "one" {
		t.Errorf("Expected Log one, got %#v", got[1])
	}
	if p, ok := got[2].(Progress); !ok || p.Fraction != 0.5 {
		t.Errorf("Expected Progress 0.5, got %#v", got[2])
	}
	if l, ok := got[3].(Log); !ok || l.Line != "two" {
		t.Errorf("Expected Log two, got %#v", got[3])
	}

	if n := r.Drain(func(Update) {}); n != 0 {
		t.Errorf("Expected empty relay, drained %d", n)
	}
}

func TestRelay_OfferDropsWhenFull(t *testing.T) {
	r := New(1)
	if !r.Offer(Progress{Fraction: 0.1}) {
		t.Fatal("Expected first offer to succeed")
	}
	if r.Offer(Progress{Fraction: 0.2}) {
		t.Fatal("Expected offer on a full relay to be dropped")
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 queued update, got %d", r.Len())
	}
}

func TestRelay_PostWaitsForRoom(t *testing.T) {
	r := New(1)
	ctx := context.Background()
	_ = r.Post(ctx, Log{Line: "first"})

	posted := make(chan error, 1)
	go func() {
		posted <- r.Post(ctx, Log{Line: "second"})
	}()

	select {
	case <-posted:
		t.Fatal("Post should block while the relay is full")
	case <-time.After(50 * time.Millisecond):
	}

	var lines []string
	deadline := time.Now().Add(2 * time.Second)
	for len(lines) < 2 && time.Now().Before(deadline) {
		r.Drain(func(u Update) { lines = append(lines, u.(Log).Line) })
		time.Sleep(5 * time.Millisecond)
	}
	if err := <-posted; err != nil {
		t.Fatalf("Post returned %v", err)
	}
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("Expected [first second], got %v", lines)
	}
}

func TestRelay_PostHonoursContext(t *testing.T) {
	r := New(1)
	r.Offer(Log{Line: "fill"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Post(ctx, Log{Line: "late"}); err == nil {
		t.Error("Expected context error on a full relay")
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	r := New(0)
	if cap(r.ch) != DefaultCapacity {
		t.Errorf("Expected capacity %d, got %d", DefaultCapacity, cap(r.ch))
	}
}

func TestLevel_String(t *testing.T) {
	if LevelWarn.String() != "warn" || LevelError.String() != "error" || LevelInfo.String() != "info" {
		t.Error("unexpected level names")
	}
}

func TestDone_CarriesStatus(t *testing.T) {
	var u Update = Done{JobID: "job-1", Status: model.JobStatusSucceeded}
	if d, ok := u.(Done); !ok || d.Status != model.JobStatusSucceeded {
		t.Errorf("unexpected Done %#v", u)
	}
}
