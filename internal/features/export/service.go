package export

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/audit"
	"go-casework/internal/features/casefile"

	"go.uber.org/zap"
)

type CaseSnapshot struct {
	CaseID     string
	CentreID   string
	Reference  string
	Status     string
	Priority   string
	TotalDebt  float64
	DebtCount  int
	ExportedAt time.Time
}

type CaseLister interface {
	ListAll(ctx context.Context) ([]casefile.Case, error)
}

type ExportService interface {
	ExportCases(ctx context.Context) (int, error)
}

type ExportServiceImpl struct {
	Cases     CaseLister
	Reporting *ReportingDB
	Audit     audit.AuditService
	Logger    *zap.Logger
}

func NewExportService(cases CaseLister, reporting *ReportingDB, auditService audit.AuditService, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		Cases:     cases,
		Reporting: reporting,
		Audit:     auditService,
		Logger:    logger,
	}
}

// ExportCases pushes a snapshot of every case in the caller's centre to
// the reporting warehouse. Returns the number of rows written; a single
// bad row stops the run so partial exports are visible in the count.
func (s *ExportServiceImpl) ExportCases(ctx context.Context) (int, error) {
	if err := s.Reporting.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	cases, err := s.Cases.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	exported := 0
	now := time.Now().UTC()
	for i := range cases {
		c := &cases[i]
		snapshot := &CaseSnapshot{
			CaseID:     c.ID.Hex(),
			CentreID:   c.CentreID.Hex(),
			Reference:  c.Reference,
			Status:     string(c.Status),
			Priority:   c.Priority,
			TotalDebt:  c.TotalDebt,
			DebtCount:  c.DebtCount,
			ExportedAt: now,
		}
		if err := s.Reporting.UpsertSnapshot(ctx, snapshot); err != nil {
			s.Logger.Error("case export failed",
				zap.String("case_id", snapshot.CaseID), zap.Error(err))
			return exported, err
		}
		exported++
	}

	_ = s.Audit.LogChange(ctx, common_models.AuditActionExport, "case", "",
		map[string]common_models.Change{"exported": {New: exported}})

	s.Logger.Info("case export complete", zap.Int("count", exported))
	return exported, nil
}
