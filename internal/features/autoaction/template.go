package autoaction

import (
	"strings"
	"time"
)

// Substitute fills the closed token set {caseId}, {clientId}, {userId},
// {date} and {time} from the dispatch context. Unrecognized tokens pass
// through verbatim; missing context values substitute as empty string.
func Substitute(template string, tc *TriggerContext) string {
	now := time.Now()
	r := strings.NewReplacer(
		"{caseId}", tc.CaseID,
		"{clientId}", tc.ClientID,
		"{userId}", tc.UserID,
		"{date}", now.Format("02 Jan 2006"),
		"{time}", now.Format("15:04"),
	)
	return r.Replace(template)
}
