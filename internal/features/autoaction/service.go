package autoaction

import (
	"context"
	"errors"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/audit"
	"go-casework/pkg/utils"

	"go.uber.org/zap"
)

type AutoActionService interface {
	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpdateRule(ctx context.Context, rule *Rule) error
	EnableRule(ctx context.Context, id string, active bool) error
	DeleteRule(ctx context.Context, id string) error
	GetLogs(ctx context.Context, page, limit int64) ([]ExecutionLogEntry, int64, error)

	// Trigger is the engine entry point: evaluate every active rule for
	// the event and execute the ones that match.
	Trigger(ctx context.Context, tc *TriggerContext) (*DispatchResult, error)

	// TriggerCaseEvent adapts Trigger to the case service's callback
	// contract.
	TriggerCaseEvent(ctx context.Context, event, caseID, clientID string, data map[string]interface{}) error
}

type AutoActionServiceImpl struct {
	Rules        RuleRepository
	Executions   ExecutionRepository
	Executor     *Executor
	Cases        CaseReader
	Clients      ClientReader
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewAutoActionService(
	rules RuleRepository,
	executions ExecutionRepository,
	executor *Executor,
	cases CaseReader,
	clients ClientReader,
	auditService audit.AuditService,
	logger *zap.Logger,
) AutoActionService {
	return &AutoActionServiceImpl{
		Rules:        rules,
		Executions:   executions,
		Executor:     executor,
		Cases:        cases,
		Clients:      clients,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *AutoActionServiceImpl) CreateRule(ctx context.Context, rule *Rule) error {
	if rule.Name == "" || rule.TriggerEvent == "" {
		return errors.New("name and trigger_event are required")
	}
	if claims, ok := ctx.Value(utils.UserClaimsKey).(*utils.UserClaims); ok {
		rule.CreatedBy = claims.UserID
	}

	err := s.Rules.Create(ctx, rule)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionAutoAction, "auto_action", rule.ID.Hex(),
			map[string]common_models.Change{"rule": {New: rule}})
	}
	return err
}

func (s *AutoActionServiceImpl) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.Rules.GetByID(ctx, id)
}

func (s *AutoActionServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return s.Rules.List(ctx)
}

func (s *AutoActionServiceImpl) UpdateRule(ctx context.Context, rule *Rule) error {
	oldRule, _ := s.Rules.GetByID(ctx, rule.ID.Hex())

	err := s.Rules.Update(ctx, rule)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionAutoAction, "auto_action", rule.ID.Hex(),
			map[string]common_models.Change{"rule": {Old: oldRule, New: rule}})
	}
	return err
}

func (s *AutoActionServiceImpl) EnableRule(ctx context.Context, id string, active bool) error {
	err := s.Rules.Enable(ctx, id, active)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionAutoAction, "auto_action", id,
			map[string]common_models.Change{"is_active": {New: active}})
	}
	return err
}

func (s *AutoActionServiceImpl) DeleteRule(ctx context.Context, id string) error {
	oldRule, _ := s.Rules.GetByID(ctx, id)

	err := s.Rules.Delete(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionAutoAction, "auto_action", id,
			map[string]common_models.Change{"rule": {Old: oldRule, New: "DELETED"}})
	}
	return err
}

func (s *AutoActionServiceImpl) GetLogs(ctx context.Context, page, limit int64) ([]ExecutionLogEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.Executions.List(ctx, page, limit)
}

// Trigger runs every matching rule, highest priority first. A rule that
// fails, panics or cannot be logged never stops the rules behind it.
func (s *AutoActionServiceImpl) Trigger(ctx context.Context, tc *TriggerContext) (*DispatchResult, error) {
	if tc == nil || tc.Event == "" {
		return nil, errors.New("event is required")
	}
	if _, err := common_models.CentreID(ctx); err != nil {
		return nil, err
	}

	rules, err := s.Rules.FindForEvent(ctx, tc.Event)
	if err != nil {
		return nil, err
	}

	// one snapshot of case/client data per dispatch
	resolver := newFieldResolver(tc, s.Cases, s.Clients)

	result := &DispatchResult{ExecutedActions: []ExecutedRule{}}
	for i := range rules {
		rule := &rules[i]
		if executed, ok := s.dispatchRule(ctx, rule, tc, resolver); ok {
			result.ExecutedActions = append(result.ExecutedActions, executed)
		}
	}
	return result, nil
}

func (s *AutoActionServiceImpl) dispatchRule(ctx context.Context, rule *Rule, tc *TriggerContext, resolver *fieldResolver) (executed ExecutedRule, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("auto action rule panicked",
				zap.String("rule_id", rule.ID.Hex()),
				zap.String("rule_name", rule.Name),
				zap.Any("panic", r))
			ok = false
		}
	}()

	if !Matches(ctx, rule.TriggerConditions, resolver) {
		return ExecutedRule{}, false
	}

	results := s.Executor.Execute(ctx, rule.Actions, tc)

	record := &ExecutionRecord{
		RuleID:        rule.ID,
		CaseID:        tc.CaseID,
		ActionResults: results,
		ExecutedBy:    tc.UserID,
		ExecutedAt:    time.Now(),
	}
	if err := s.Executions.Create(ctx, record); err != nil {
		// the dispatch outcome stands even when the log write fails
		s.Logger.Warn("failed to persist execution record",
			zap.String("rule_id", rule.ID.Hex()), zap.Error(err))
	}

	return ExecutedRule{
		RuleID:   rule.ID.Hex(),
		RuleName: rule.Name,
		Actions:  results,
	}, true
}

func (s *AutoActionServiceImpl) TriggerCaseEvent(ctx context.Context, event, caseID, clientID string, data map[string]interface{}) error {
	userID := ""
	if claims, ok := ctx.Value(utils.UserClaimsKey).(*utils.UserClaims); ok {
		userID = claims.UserID
	}

	_, err := s.Trigger(ctx, &TriggerContext{
		Event:    event,
		CaseID:   caseID,
		ClientID: clientID,
		UserID:   userID,
		Data:     data,
	})
	return err
}
