package autoaction

import (
	"context"

	"go-casework/internal/features/casefile"
	"go-casework/internal/features/client"
)

type CaseReader interface {
	FindByID(ctx context.Context, id string) (*casefile.Case, error)
}

type ClientReader interface {
	FindByID(ctx context.Context, id string) (*client.Client, error)
}

// fieldResolver maps well-known condition field names to live case and
// client data. The case and client are fetched at most once per
// dispatch, so every rule in the same dispatch sees one snapshot: a rule
// evaluated after an earlier rule's update_case_status still sees the
// pre-mutation status. Unknown field names fall back to the trigger's
// free-form data.
type fieldResolver struct {
	tc      *TriggerContext
	cases   CaseReader
	clients ClientReader

	caseDoc       *casefile.Case
	caseFetched   bool
	clientDoc     *client.Client
	clientFetched bool
}

func newFieldResolver(tc *TriggerContext, cases CaseReader, clients ClientReader) *fieldResolver {
	return &fieldResolver{tc: tc, cases: cases, clients: clients}
}

func (f *fieldResolver) loadCase(ctx context.Context) *casefile.Case {
	if !f.caseFetched {
		f.caseFetched = true
		if f.tc.CaseID != "" && f.cases != nil {
			if c, err := f.cases.FindByID(ctx, f.tc.CaseID); err == nil {
				f.caseDoc = c
			}
		}
	}
	return f.caseDoc
}

func (f *fieldResolver) loadClient(ctx context.Context) *client.Client {
	if !f.clientFetched {
		f.clientFetched = true
		if f.tc.ClientID != "" && f.clients != nil {
			if c, err := f.clients.FindByID(ctx, f.tc.ClientID); err == nil {
				f.clientDoc = c
			}
		}
	}
	return f.clientDoc
}

// Resolve returns the current value for a condition field and whether
// it resolved at all. A field that names live data but has no backing
// record falls back to the trigger data before giving up.
func (f *fieldResolver) Resolve(ctx context.Context, field string) (interface{}, bool) {
	switch field {
	case "case_status":
		if c := f.loadCase(ctx); c != nil {
			return string(c.Status), true
		}
	case "case_priority":
		if c := f.loadCase(ctx); c != nil {
			return c.Priority, true
		}
	case "total_debt":
		if c := f.loadCase(ctx); c != nil {
			return c.TotalDebt, true
		}
	case "debt_count":
		if c := f.loadCase(ctx); c != nil {
			return c.DebtCount, true
		}
	case "client_vulnerability":
		if c := f.loadClient(ctx); c != nil {
			return c.Vulnerable, true
		}
	case "client_language":
		if c := f.loadClient(ctx); c != nil {
			return c.PreferredLanguage, true
		}
	}

	if f.tc.Data != nil {
		if v, ok := f.tc.Data[field]; ok {
			return v, true
		}
	}
	return nil, false
}
