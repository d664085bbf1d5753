package autoaction

import (
	"strings"
	"testing"
	"time"
)

func TestSubstitute(t *testing.T) {
	tc := &TriggerContext{
		Event:    "case_created",
		CaseID:   "42",
		ClientID: "C9",
		UserID:   "U1",
	}

	got := Substitute("Hello {caseId}, it is {date}", tc)
	if !strings.HasPrefix(got, "Hello 42, it is ") {
		t.Errorf("unexpected substitution: %q", got)
	}
	if !strings.Contains(got, time.Now().Format("2006")) {
		t.Errorf("date token not substituted: %q", got)
	}

	got = Substitute("case {caseId} client {clientId} by {userId}", tc)
	if got != "case 42 client C9 by U1" {
		t.Errorf("unexpected substitution: %q", got)
	}
}

func TestSubstituteUnknownTokenPassesThrough(t *testing.T) {
	tc := &TriggerContext{CaseID: "42"}

	got := Substitute("{caseId} and {foo}", tc)
	if got != "42 and {foo}" {
		t.Errorf("unknown token should pass through verbatim, got %q", got)
	}
}

func TestSubstituteMissingValuesAreEmpty(t *testing.T) {
	got := Substitute("case={caseId} user={userId}", &TriggerContext{})
	if got != "case= user=" {
		t.Errorf("missing context values should substitute as empty, got %q", got)
	}
}
