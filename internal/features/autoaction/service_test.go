package autoaction

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/casefile"
	"go-casework/internal/features/client"
	"go-casework/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockRuleRepo struct {
	rules []Rule
	err   error
}

func (m *mockRuleRepo) Create(ctx context.Context, rule *Rule) error { return m.err }
func (m *mockRuleRepo) GetByID(ctx context.Context, id string) (*Rule, error) {
	return nil, m.err
}
func (m *mockRuleRepo) List(ctx context.Context) ([]Rule, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []Rule
	for _, r := range m.rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockRuleRepo) FindForEvent(ctx context.Context, event string) ([]Rule, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []Rule
	for _, r := range m.rules {
		if r.TriggerEvent == event && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockRuleRepo) Update(ctx context.Context, rule *Rule) error            { return m.err }
func (m *mockRuleRepo) Enable(ctx context.Context, id string, active bool) error { return m.err }
func (m *mockRuleRepo) Delete(ctx context.Context, id string) error             { return m.err }

type mockExecRepo struct {
	records   []*ExecutionRecord
	entries   []ExecutionLogEntry
	createErr error
}

func (m *mockExecRepo) Create(ctx context.Context, record *ExecutionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockExecRepo) List(ctx context.Context, page, limit int64) ([]ExecutionLogEntry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

type mockAudit struct{}

func (m *mockAudit) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (m *mockAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func centreCtx() context.Context {
	return context.WithValue(context.Background(),
		common_models.CentreIDKey, "000000000000000000000000")
}

func newTestService(rules []Rule, execRepo *mockExecRepo, handlers map[ActionType]ActionHandler) AutoActionService {
	return NewAutoActionService(
		&mockRuleRepo{rules: rules},
		execRepo,
		NewExecutor(handlers, time.Second, zap.NewNop()),
		&mockCases{},
		&mockClients{},
		&mockAudit{},
		zap.NewNop(),
	)
}

func TestTriggerRequiresEvent(t *testing.T) {
	svc := newTestService(nil, &mockExecRepo{}, nil)

	if _, err := svc.Trigger(centreCtx(), &TriggerContext{}); err == nil {
		t.Error("empty event must be rejected")
	}
	if _, err := svc.Trigger(centreCtx(), nil); err == nil {
		t.Error("nil context must be rejected")
	}
}

func TestTriggerRequiresCentre(t *testing.T) {
	svc := newTestService(nil, &mockExecRepo{}, nil)

	_, err := svc.Trigger(context.Background(), &TriggerContext{Event: "case_created"})
	if err == nil {
		t.Error("missing centre scope must be rejected")
	}
}

func TestTriggerRunsAllMatchingRulesInPriorityOrder(t *testing.T) {
	ok := &stubHandler{result: ActionResult{Type: "noop", Success: true}}
	rules := []Rule{
		{
			ID: primitive.NewObjectID(), Name: "R1", TriggerEvent: "case_created",
			Priority: 10, IsActive: true, Actions: []ActionSpec{{Type: "noop"}},
		},
		{
			ID: primitive.NewObjectID(), Name: "R2", TriggerEvent: "case_created",
			Priority: 5, IsActive: true, Actions: []ActionSpec{{Type: "noop"}},
		},
	}
	execRepo := &mockExecRepo{}
	svc := newTestService(rules, execRepo, map[ActionType]ActionHandler{"noop": ok})

	result, err := svc.Trigger(centreCtx(), &TriggerContext{Event: "case_created", CaseID: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ExecutedActions) != 2 {
		t.Fatalf("all matching rules must run, got %d", len(result.ExecutedActions))
	}
	if result.ExecutedActions[0].RuleName != "R1" || result.ExecutedActions[1].RuleName != "R2" {
		t.Errorf("rules out of priority order: %s then %s",
			result.ExecutedActions[0].RuleName, result.ExecutedActions[1].RuleName)
	}
	if len(execRepo.records) != 2 {
		t.Errorf("expected one execution record per matched rule, got %d", len(execRepo.records))
	}
}

func TestTriggerEndToEndHighDebt(t *testing.T) {
	supervisorID := primitive.NewObjectID()
	deps := HandlerDeps{
		Clients: &mockClients{client: &client.Client{Phone: "07700900000"}},
		Notes:   &mockNotes{noteID: "n1"},
		Users:   &mockUsers{supervisor: &user.User{ID: supervisorID}},
		Notify:  &mockNotifier{},
	}
	rule := Rule{
		ID:           primitive.NewObjectID(),
		Name:         "High debt escalation",
		TriggerEvent: "case_created",
		IsActive:     true,
		TriggerConditions: map[string]Condition{
			"total_debt": {Operator: OperatorGreaterThan, Value: float64(10000)},
		},
		Actions: []ActionSpec{
			{Type: ActionCreateNote, Params: map[string]interface{}{"content": "High debt case {caseId}"}},
			{Type: ActionNotifySupervisor, Params: map[string]interface{}{"message": "Review needed"}},
		},
	}
	execRepo := &mockExecRepo{}
	svc := newTestService([]Rule{rule}, execRepo, NewHandlerRegistry(deps))

	result, err := svc.Trigger(centreCtx(), &TriggerContext{
		Event:  "case_created",
		CaseID: "7",
		Data:   map[string]interface{}{"total_debt": float64(15000)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ExecutedActions) != 1 {
		t.Fatalf("expected 1 executed rule, got %d", len(result.ExecutedActions))
	}
	actions := result.ExecutedActions[0].Actions
	if len(actions) != 2 {
		t.Fatalf("expected 2 action results, got %d", len(actions))
	}
	for _, a := range actions {
		if !a.Success {
			t.Errorf("action %s failed: %s", a.Type, a.Error)
		}
	}

	if len(execRepo.records) != 1 {
		t.Fatalf("expected exactly one execution record, got %d", len(execRepo.records))
	}
	record := execRepo.records[0]
	if record.RuleID != rule.ID {
		t.Error("record rule_id not set")
	}
	if record.CaseID != "7" {
		t.Errorf("record case_id = %q, want 7", record.CaseID)
	}
}

func TestTriggerLowDebtDoesNotMatch(t *testing.T) {
	rule := Rule{
		ID: primitive.NewObjectID(), Name: "High debt", TriggerEvent: "case_created", IsActive: true,
		TriggerConditions: map[string]Condition{
			"total_debt": {Operator: OperatorGreaterThan, Value: float64(10000)},
		},
		Actions: []ActionSpec{{Type: "noop"}},
	}
	execRepo := &mockExecRepo{}
	svc := newTestService([]Rule{rule}, execRepo,
		map[ActionType]ActionHandler{"noop": &stubHandler{result: ActionResult{Type: "noop", Success: true}}})

	result, err := svc.Trigger(centreCtx(), &TriggerContext{
		Event: "case_created",
		Data:  map[string]interface{}{"total_debt": float64(5000)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ExecutedActions) != 0 {
		t.Error("non-matching rule must contribute nothing")
	}
	if len(execRepo.records) != 0 {
		t.Error("non-matching rule must not produce an execution record")
	}
}

func TestGetLogsReturnsJoinedEntries(t *testing.T) {
	execRepo := &mockExecRepo{entries: []ExecutionLogEntry{{
		ExecutionRecord: ExecutionRecord{RuleID: primitive.NewObjectID(), CaseID: "7"},
		RuleName:        "High debt escalation",
		CaseReference:   "RAC-0002",
		ClientName:      "Samir Haddad",
	}}}
	svc := NewAutoActionService(&mockRuleRepo{}, execRepo, nil, nil, nil, &mockAudit{}, zap.NewNop())

	entries, total, err := svc.GetLogs(centreCtx(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d (total %d)", len(entries), total)
	}
	e := entries[0]
	if e.RuleName != "High debt escalation" || e.CaseReference != "RAC-0002" || e.ClientName != "Samir Haddad" {
		t.Errorf("joined display fields lost: %+v", e)
	}
}

func TestListRulesReturnsActiveOnly(t *testing.T) {
	rules := []Rule{
		{ID: primitive.NewObjectID(), Name: "Live", TriggerEvent: "case_created", IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Disabled", TriggerEvent: "case_created", IsActive: false},
	}
	svc := newTestService(rules, &mockExecRepo{}, nil)

	got, err := svc.ListRules(centreCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the active rule, got %d", len(got))
	}
	if got[0].Name != "Live" {
		t.Errorf("listed rule = %q, want Live", got[0].Name)
	}
}

func TestDispatchSeesOneCaseSnapshot(t *testing.T) {
	caseID := primitive.NewObjectID()
	cases := &mockCases{caseDoc: &casefile.Case{ID: caseID, Status: casefile.StatusNew}}

	handlers := NewHandlerRegistry(HandlerDeps{Cases: cases})
	handlers["noop"] = &stubHandler{result: ActionResult{Type: "noop", Success: true}}

	rules := []Rule{
		{
			ID: primitive.NewObjectID(), Name: "Escalate", TriggerEvent: "case_created",
			Priority: 10, IsActive: true,
			TriggerConditions: map[string]Condition{
				"case_status": {Operator: OperatorEquals, Value: string(casefile.StatusNew)},
			},
			Actions: []ActionSpec{{Type: ActionUpdateCaseStatus, Params: map[string]interface{}{
				"status": string(casefile.StatusEscalated),
			}}},
		},
		{
			ID: primitive.NewObjectID(), Name: "Still new", TriggerEvent: "case_created",
			Priority: 5, IsActive: true,
			TriggerConditions: map[string]Condition{
				"case_status": {Operator: OperatorEquals, Value: string(casefile.StatusNew)},
			},
			Actions: []ActionSpec{{Type: "noop"}},
		},
	}
	execRepo := &mockExecRepo{}
	svc := NewAutoActionService(
		&mockRuleRepo{rules: rules},
		execRepo,
		NewExecutor(handlers, time.Second, zap.NewNop()),
		cases,
		&mockClients{},
		&mockAudit{},
		zap.NewNop(),
	)

	result, err := svc.Trigger(centreCtx(), &TriggerContext{
		Event:  "case_created",
		CaseID: caseID.Hex(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the first rule moved the case to escalated
	if cases.status != casefile.StatusEscalated {
		t.Fatalf("case status = %q, want escalated", cases.status)
	}
	// the second rule still evaluates against the dispatch-time snapshot
	if len(result.ExecutedActions) != 2 {
		t.Fatalf("expected both rules to run against one snapshot, got %d", len(result.ExecutedActions))
	}
	if result.ExecutedActions[1].RuleName != "Still new" {
		t.Errorf("second executed rule = %q, want Still new", result.ExecutedActions[1].RuleName)
	}
}

func TestTriggerRecordsFailedActions(t *testing.T) {
	rule := Rule{
		ID: primitive.NewObjectID(), Name: "Broken", TriggerEvent: "case_created", IsActive: true,
		Actions: []ActionSpec{{Type: "does_not_exist"}},
	}
	execRepo := &mockExecRepo{}
	svc := newTestService([]Rule{rule}, execRepo, map[ActionType]ActionHandler{})

	result, err := svc.Trigger(centreCtx(), &TriggerContext{Event: "case_created", CaseID: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(execRepo.records) != 1 {
		t.Fatalf("failed actions still produce an execution record, got %d", len(execRepo.records))
	}
	results := execRepo.records[0].ActionResults
	if len(results) != 1 || results[0].Success || results[0].Error != "Unknown action type" {
		t.Errorf("unexpected recorded results: %+v", results)
	}
	if len(result.ExecutedActions) != 1 {
		t.Error("matched rule with failed actions still counts as executed")
	}
}

func TestTriggerContinuesWhenLoggingFails(t *testing.T) {
	rule := Rule{
		ID: primitive.NewObjectID(), Name: "R", TriggerEvent: "case_created", IsActive: true,
		Actions: []ActionSpec{{Type: "noop"}},
	}
	execRepo := &mockExecRepo{createErr: errors.New("mongo down")}
	svc := newTestService([]Rule{rule}, execRepo,
		map[ActionType]ActionHandler{"noop": &stubHandler{result: ActionResult{Type: "noop", Success: true}}})

	result, err := svc.Trigger(centreCtx(), &TriggerContext{Event: "case_created"})
	if err != nil {
		t.Fatalf("logging failure must not surface to the caller: %v", err)
	}
	if len(result.ExecutedActions) != 1 {
		t.Error("dispatch outcome must stand when the log write fails")
	}
}
