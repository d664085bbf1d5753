package autoaction

import (
	"context"
	"testing"
)

func resolverFor(data map[string]interface{}) *fieldResolver {
	return newFieldResolver(&TriggerContext{Event: "case_created", Data: data}, nil, nil)
}

func TestMatchesEmptyConditions(t *testing.T) {
	ctx := context.Background()

	if !Matches(ctx, nil, resolverFor(nil)) {
		t.Error("nil conditions should always match")
	}
	if !Matches(ctx, map[string]Condition{}, resolverFor(nil)) {
		t.Error("empty conditions should always match")
	}
}

func TestMatchesOperators(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data map[string]interface{}
		cond map[string]Condition
		want bool
	}{
		{
			name: "equals matches string",
			data: map[string]interface{}{"case_status": "new"},
			cond: map[string]Condition{"case_status": {Operator: OperatorEquals, Value: "new"}},
			want: true,
		},
		{
			name: "equals is numeric aware",
			data: map[string]interface{}{"total_debt": float64(10000)},
			cond: map[string]Condition{"total_debt": {Operator: OperatorEquals, Value: "10000"}},
			want: true,
		},
		{
			name: "not_equals",
			data: map[string]interface{}{"case_status": "new"},
			cond: map[string]Condition{"case_status": {Operator: OperatorNotEquals, Value: "closed"}},
			want: true,
		},
		{
			name: "greater_than 15000 over 10000 matches",
			data: map[string]interface{}{"total_debt": float64(15000)},
			cond: map[string]Condition{"total_debt": {Operator: OperatorGreaterThan, Value: float64(10000)}},
			want: true,
		},
		{
			name: "greater_than 5000 over 10000 does not match",
			data: map[string]interface{}{"total_debt": float64(5000)},
			cond: map[string]Condition{"total_debt": {Operator: OperatorGreaterThan, Value: float64(10000)}},
			want: false,
		},
		{
			name: "greater_than non-numeric operand fails",
			data: map[string]interface{}{"total_debt": "lots"},
			cond: map[string]Condition{"total_debt": {Operator: OperatorGreaterThan, Value: float64(10000)}},
			want: false,
		},
		{
			name: "less_than",
			data: map[string]interface{}{"debt_count": 3},
			cond: map[string]Condition{"debt_count": {Operator: OperatorLessThan, Value: float64(5)}},
			want: true,
		},
		{
			name: "contains substring",
			data: map[string]interface{}{"summary": "urgent bailiff action"},
			cond: map[string]Condition{"summary": {Operator: OperatorContains, Value: "bailiff"}},
			want: true,
		},
		{
			name: "contains sequence membership",
			data: map[string]interface{}{"tags": []interface{}{"priority", "review"}},
			cond: map[string]Condition{"tags": {Operator: OperatorContains, Value: "review"}},
			want: true,
		},
		{
			name: "not_contains sequence",
			data: map[string]interface{}{"tags": []interface{}{"priority"}},
			cond: map[string]Condition{"tags": {Operator: OperatorNotContains, Value: "review"}},
			want: true,
		},
		{
			name: "unknown operator never matches",
			data: map[string]interface{}{"case_status": "new"},
			cond: map[string]Condition{"case_status": {Operator: "matches_regex", Value: "new"}},
			want: false,
		},
		{
			name: "AND requires every condition",
			data: map[string]interface{}{"total_debt": float64(15000), "case_status": "closed"},
			cond: map[string]Condition{
				"total_debt":  {Operator: OperatorGreaterThan, Value: float64(10000)},
				"case_status": {Operator: OperatorEquals, Value: "new"},
			},
			want: false,
		},
		{
			name: "AND all conditions hold",
			data: map[string]interface{}{"total_debt": float64(15000), "case_status": "new"},
			cond: map[string]Condition{
				"total_debt":  {Operator: OperatorGreaterThan, Value: float64(10000)},
				"case_status": {Operator: OperatorEquals, Value: "new"},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(ctx, tt.cond, resolverFor(tt.data))
			if got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesUnresolvedField(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		op   Operator
		want bool
	}{
		{OperatorEquals, false},
		{OperatorGreaterThan, false},
		{OperatorLessThan, false},
		{OperatorContains, false},
		{OperatorNotEquals, true},
		{OperatorNotContains, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			cond := map[string]Condition{"missing_field": {Operator: tt.op, Value: "x"}}
			got := Matches(ctx, cond, resolverFor(nil))
			if got != tt.want {
				t.Errorf("unresolved field with %s = %v, want %v", tt.op, got, tt.want)
			}
		})
	}
}
