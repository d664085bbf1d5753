package casefile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// AutomationTrigger is the narrow contract the case service uses to hand
// domain events to the auto action engine. Wired in main to avoid an
// import cycle; trigger failures never surface to the caller.
type AutomationTrigger interface {
	TriggerCaseEvent(ctx context.Context, event, caseID, clientID string, data map[string]interface{}) error
}

type CaseService interface {
	Create(ctx context.Context, c *Case) error
	Get(ctx context.Context, id string) (*Case, error)
	List(ctx context.Context, status string, page, limit int64) ([]Case, int64, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	ChangeStatus(ctx context.Context, id string, status CaseStatus) error
	Delete(ctx context.Context, id string) error
}

type CaseServiceImpl struct {
	Repo       CaseRepository
	Automation AutomationTrigger
	Log        *zap.Logger
}

func NewCaseService(repo CaseRepository, automation AutomationTrigger, log *zap.Logger) CaseService {
	return &CaseServiceImpl{
		Repo:       repo,
		Automation: automation,
		Log:        log,
	}
}

func (s *CaseServiceImpl) Create(ctx context.Context, c *Case) error {
	if c.ClientID.IsZero() {
		return fmt.Errorf("client_id is required")
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return err
	}

	s.fireEvent(ctx, EventCaseCreated, c, map[string]interface{}{
		"total_debt": c.TotalDebt,
		"debt_count": c.DebtCount,
		"priority":   c.Priority,
	})
	return nil
}

func (s *CaseServiceImpl) Get(ctx context.Context, id string) (*Case, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CaseServiceImpl) List(ctx context.Context, status string, page, limit int64) ([]Case, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}
	return s.Repo.List(ctx, filter, limit, (page-1)*limit)
}

func (s *CaseServiceImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	delete(updates, "_id")
	delete(updates, "id")
	delete(updates, "centre_id")
	delete(updates, "status") // status changes go through ChangeStatus

	if err := s.Repo.Update(ctx, id, updates); err != nil {
		return err
	}

	if c, err := s.Repo.FindByID(ctx, id); err == nil {
		s.fireEvent(ctx, EventCaseUpdated, c, map[string]interface{}{
			"total_debt": c.TotalDebt,
			"debt_count": c.DebtCount,
		})
	}
	return nil
}

func (s *CaseServiceImpl) ChangeStatus(ctx context.Context, id string, status CaseStatus) error {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	oldStatus := c.Status

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	c.Status = status
	s.fireEvent(ctx, EventStatusChanged, c, map[string]interface{}{
		"old_status": string(oldStatus),
		"new_status": string(status),
	})
	return nil
}

func (s *CaseServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *CaseServiceImpl) fireEvent(ctx context.Context, event string, c *Case, data map[string]interface{}) {
	if s.Automation == nil {
		return
	}
	if err := s.Automation.TriggerCaseEvent(ctx, event, c.ID.Hex(), c.ClientID.Hex(), data); err != nil {
		s.Log.Warn("auto action trigger failed",
			zap.String("event", event),
			zap.String("case_id", c.ID.Hex()),
			zap.Error(err))
	}
}
