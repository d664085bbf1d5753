package autoaction

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubHandler struct {
	result ActionResult
	delay  time.Duration
	panics bool
}

func (h *stubHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	if h.panics {
		panic("handler blew up")
	}
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
		}
	}
	return h.result
}

func TestExecutorOrderAndIsolation(t *testing.T) {
	handlers := map[ActionType]ActionHandler{
		"fail_action": &stubHandler{result: ActionResult{Type: "fail_action", Success: false, Error: "boom"}},
		"ok_action":   &stubHandler{result: ActionResult{Type: "ok_action", Success: true}},
	}
	e := NewExecutor(handlers, time.Second, zap.NewNop())

	results := e.Execute(context.Background(), []ActionSpec{
		{Type: "fail_action"},
		{Type: "ok_action"},
	}, &TriggerContext{Event: "case_created"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Type != "fail_action" || results[0].Success {
		t.Errorf("first result should be the failure: %+v", results[0])
	}
	if results[1].Type != "ok_action" || !results[1].Success {
		t.Errorf("a failing action must not stop the next one: %+v", results[1])
	}
}

func TestExecutorUnknownActionType(t *testing.T) {
	e := NewExecutor(map[ActionType]ActionHandler{}, time.Second, zap.NewNop())

	results := e.Execute(context.Background(), []ActionSpec{{Type: "launch_rocket"}}, &TriggerContext{})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Success || results[0].Error != "Unknown action type" {
		t.Errorf("unexpected result for unknown type: %+v", results[0])
	}
}

func TestExecutorTimeout(t *testing.T) {
	handlers := map[ActionType]ActionHandler{
		"slow": &stubHandler{result: ActionResult{Type: "slow", Success: true}, delay: time.Second},
	}
	e := NewExecutor(handlers, 20*time.Millisecond, zap.NewNop())

	results := e.Execute(context.Background(), []ActionSpec{{Type: "slow"}}, &TriggerContext{})

	if results[0].Success {
		t.Error("timed out action must be recorded as a failure")
	}
	if results[0].Error == "" {
		t.Error("timeout failure should carry an error message")
	}
}

func TestExecutorRecoversPanic(t *testing.T) {
	handlers := map[ActionType]ActionHandler{
		"angry": &stubHandler{panics: true},
		"calm":  &stubHandler{result: ActionResult{Type: "calm", Success: true}},
	}
	e := NewExecutor(handlers, time.Second, zap.NewNop())

	results := e.Execute(context.Background(), []ActionSpec{
		{Type: "angry"},
		{Type: "calm"},
	}, &TriggerContext{})

	if results[0].Success {
		t.Error("panicking handler must yield a failed result")
	}
	if !results[1].Success {
		t.Error("panic in one handler must not stop the next")
	}
}
