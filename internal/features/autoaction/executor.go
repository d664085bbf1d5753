package autoaction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Executor runs a rule's actions strictly in order. Ordering is a
// guarantee, not an accident: later actions may depend on earlier ones'
// side effects (create_task reads the note create_note just wrote). It
// never returns an error; everything surfaces inside the results.
type Executor struct {
	handlers map[ActionType]ActionHandler
	timeout  time.Duration
	logger   *zap.Logger
}

func NewExecutor(handlers map[ActionType]ActionHandler, timeout time.Duration, logger *zap.Logger) *Executor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Executor{
		handlers: handlers,
		timeout:  timeout,
		logger:   logger,
	}
}

func (e *Executor) Execute(ctx context.Context, actions []ActionSpec, tc *TriggerContext) []ActionResult {
	results := make([]ActionResult, 0, len(actions))
	for _, spec := range actions {
		handler, ok := e.handlers[spec.Type]
		if !ok {
			results = append(results, ActionResult{
				Type:    spec.Type,
				Success: false,
				Error:   "Unknown action type",
			})
			continue
		}

		result := e.run(ctx, handler, spec, tc)
		if !result.Success {
			e.logger.Warn("auto action failed",
				zap.String("action_type", string(spec.Type)),
				zap.String("case_id", tc.CaseID),
				zap.String("error", result.Error))
		}
		results = append(results, result)
	}
	return results
}

// run bounds one handler with the per-action timeout and recovers its
// panics into a failed result. A timed-out handler's goroutine is left
// to finish against the cancelled context; its late result is dropped.
func (e *Executor) run(ctx context.Context, handler ActionHandler, spec ActionSpec, tc *TriggerContext) ActionResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan ActionResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- ActionResult{
					Type:    spec.Type,
					Success: false,
					Error:   fmt.Sprintf("action panicked: %v", r),
				}
			}
		}()
		done <- handler.Execute(ctx, spec.Params, tc)
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		return ActionResult{
			Type:    spec.Type,
			Success: false,
			Error:   fmt.Sprintf("action timed out after %s", e.timeout),
		}
	}
}
