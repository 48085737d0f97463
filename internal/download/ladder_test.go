package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/selector"
)

// fakeInvoker fails or succeeds per call index and records every call.
type fakeInvoker struct {
	calls   []Call
	results []error
	onCall  func(ctx context.Context, call Call) error
}

func (f *fakeInvoker) Invoke(ctx context.Context, call Call) error {
	f.calls = append(f.calls, call)
	if f.onCall != nil {
		if err := f.onCall(ctx, call); err != nil {
			return err
		}
	}
	i := len(f.calls) - 1
	if i < len(f.results) {
		return f.results[i]
	}
	return nil
}

func TestBuildPlan(t *testing.T) {
	selectors := []string{"a", "b"}

	plan := BuildPlan(selectors, false)
	if len(plan) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(plan))
	}

	plan = BuildPlan(selectors, true)
	expected := Plan{
		{Client: model.ClientDefault, Selector: "a"},
		{Client: model.ClientDefault, Selector: "b"},
		{Client: model.ClientAlternate, Selector: "a"},
		{Client: model.ClientAlternate, Selector: "b"},
	}
	if len(plan) != len(expected) {
		t.Fatalf("Expected %d attempts, got %d", len(expected), len(plan))
	}
	for i := range expected {
		if plan[i] != expected[i] {
			t.Errorf("attempt %d: expected %+v, got %+v", i, expected[i], plan[i])
		}
	}
}

func TestBuildAudioPlan(t *testing.T) {
	plan := BuildAudioPlan("ba[abr>=192]/ba", "mp3", true)
	if len(plan) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(plan))
	}
	if plan[0].Label() != "MP3" {
		t.Errorf("Expected label MP3, got %q", plan[0].Label())
	}
	if got := plan[1].Announce(); got != "→ Audio-only: ba[abr>=192]/ba → MP3 (client=android)" {
		t.Errorf("unexpected announce line %q", got)
	}
}

func TestLadder_FirstSuccessStops(t *testing.T) {
	req := model.DownloadRequest{
		URL:                "https://www.youtube.com/watch?v=abc",
		OutputDir:          "/tmp",
		Quality:            model.Quality1080,
		TryAlternateClient: true,
	}
	set, err := selector.Build(req)
	if err != nil {
		t.Fatalf("Build returned %v", err)
	}
	plan := BuildPlan(set.Strings(), req.TryAlternateClient)
	if len(plan) != 4 {
		t.Fatalf("Expected 4 attempts, got %d", len(plan))
	}

	inv := &fakeInvoker{}
	var lines []string
	ladder := &Ladder{
		Invoker: inv,
		Logf:    func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) },
	}

	out := ladder.Run(context.Background(), plan, Call{URL: req.URL})
	if out.Status != model.OutcomeSuccess {
		t.Fatalf("Expected success, got %s", out.Status)
	}
	if len(inv.calls) != 1 {
		t.Fatalf("Expected 1 invoker call, got %d", len(inv.calls))
	}
	if inv.calls[0].Selector != "bv*[height=1080]+ba/b[height=1080]" {
		t.Errorf("unexpected selector %q", inv.calls[0].Selector)
	}
	if inv.calls[0].Client != model.ClientDefault {
		t.Errorf("Expected default client, got %s", inv.calls[0].Client)
	}
	if len(lines) != 1 || lines[0] != "→ Trying format: bv*[height=1080]+ba/b[height=1080] (client=normal)" {
		t.Errorf("unexpected log lines %q", lines)
	}
}

func TestLadder_Exhaustion(t *testing.T) {
	plan := BuildPlan([]string{"a", "b"}, true)
	inv := &fakeInvoker{results: []error{
		errors.New("e1"), errors.New("e2"), errors.New("e3"), errors.New("e4"),
	}}
	ladder := &Ladder{Invoker: inv}

	out := ladder.Run(context.Background(), plan, Call{})
	if out.Status != model.OutcomeFailure {
		t.Fatalf("Expected failure, got %s", out.Status)
	}
	expected := []string{
		"[normal] a → e1",
		"[normal] b → e2",
		"[android] a → e3",
		"[android] b → e4",
	}
	if strings.Join(out.Errors, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected errors %q, got %q", expected, out.Errors)
	}
	if len(inv.calls) != 4 {
		t.Errorf("Expected 4 calls, got %d", len(inv.calls))
	}
}

func TestLadder_FailureThenSuccess(t *testing.T) {
	plan := BuildPlan([]string{"a", "b"}, false)
	inv := &fakeInvoker{results: []error{errors.New("blocked")}}

	out := (&Ladder{Invoker: inv}).Run(context.Background(), plan, Call{})
	if out.Status != model.OutcomeSuccess {
		t.Fatalf("Expected success, got %s", out.Status)
	}
	if len(inv.calls) != 2 || inv.calls[1].Selector != "b" {
		t.Errorf("Expected second attempt with selector b, got %+v", inv.calls)
	}
	if len(out.Errors) != 1 {
		t.Errorf("Expected 1 recorded error, got %d", len(out.Errors))
	}
}

func TestLadder_CancelBetweenAttempts(t *testing.T) {
	var cancelled atomic.Bool
	inv := &fakeInvoker{onCall: func(context.Context, Call) error {
		cancelled.Store(true)
		return errors.New("first attempt failed")
	}}
	ladder := &Ladder{Invoker: inv, Cancelled: cancelled.Load}

	out := ladder.Run(context.Background(), BuildPlan([]string{"a", "b"}, true), Call{})
	if out.Status != model.OutcomeCancelled {
		t.Fatalf("Expected cancelled, got %s", out.Status)
	}
	if len(inv.calls) != 1 {
		t.Errorf("Expected no calls after cancellation, got %d", len(inv.calls))
	}
	for _, e := range out.Errors {
		if strings.Contains(e, "cancel") {
			t.Errorf("cancellation must not be recorded as an error: %q", e)
		}
	}
}

func TestLadder_CancelBeforeStart(t *testing.T) {
	inv := &fakeInvoker{}
	ladder := &Ladder{Invoker: inv, Cancelled: func() bool { return true }}

	out := ladder.Run(context.Background(), BuildPlan([]string{"a"}, false), Call{})
	if out.Status != model.OutcomeCancelled {
		t.Fatalf("Expected cancelled, got %s", out.Status)
	}
	if len(inv.calls) != 0 {
		t.Errorf("Expected no calls, got %d", len(inv.calls))
	}
}

func TestLadder_CancelInsideProgress(t *testing.T) {
	var cancelled atomic.Bool
	var forwarded int

	inv := &fakeInvoker{onCall: func(ctx context.Context, call Call) error {
		call.Progress(model.Downloading{Fraction: 0.1, TotalKnown: true})
		cancelled.Store(true)
		call.Progress(model.Downloading{Fraction: 0.2, TotalKnown: true})
		<-ctx.Done()
		return ctx.Err()
	}}
	ladder := &Ladder{Invoker: inv, Cancelled: cancelled.Load}

	call := Call{Progress: func(model.ProgressEvent) { forwarded++ }}
	out := ladder.Run(context.Background(), BuildPlan([]string{"a", "b"}, true), call)
	if out.Status != model.OutcomeCancelled {
		t.Fatalf("Expected cancelled, got %s", out.Status)
	}
	if len(inv.calls) != 1 {
		t.Errorf("Expected 1 call, got %d", len(inv.calls))
	}
	if forwarded != 1 {
		t.Errorf("Expected 1 forwarded event, got %d", forwarded)
	}
	if len(out.Errors) != 0 {
		t.Errorf("Expected no recorded errors, got %q", out.Errors)
	}
}

func TestLadder_ParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inv := &fakeInvoker{onCall: func(context.Context, Call) error {
		cancel()
		return context.Canceled
	}}

	out := (&Ladder{Invoker: inv}).Run(ctx, BuildPlan([]string{"a", "b"}, false), Call{})
	if out.Status != model.OutcomeCancelled {
		t.Fatalf("Expected cancelled, got %s", out.Status)
	}
	if len(inv.calls) != 1 {
		t.Errorf("Expected 1 call, got %d", len(inv.calls))
	}
}

func TestOutputTemplate(t *testing.T) {
	if got := OutputTemplate("/data/videos"); got != "/data/videos/%(title)s.%(ext)s" {
		t.Errorf("unexpected template %q", got)
	}
}
