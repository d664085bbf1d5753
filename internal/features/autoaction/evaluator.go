package autoaction

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Matches evaluates a rule's conditions against the dispatch context.
// Conditions are ANDed and evaluation stops at the first failure. A nil
// or empty condition set always matches.
func Matches(ctx context.Context, conditions map[string]Condition, resolver *fieldResolver) bool {
	for field, cond := range conditions {
		value, resolved := resolver.Resolve(ctx, field)
		if !resolved {
			// absence differs from any value
			if cond.Operator == OperatorNotEquals || cond.Operator == OperatorNotContains {
				continue
			}
			return false
		}
		if !evaluate(cond.Operator, value, cond.Value) {
			return false
		}
	}
	return true
}

func evaluate(op Operator, actual, expected interface{}) bool {
	switch op {
	case OperatorEquals:
		return valuesEqual(actual, expected)
	case OperatorNotEquals:
		return !valuesEqual(actual, expected)
	case OperatorGreaterThan:
		a, aOK := toFloat(actual)
		b, bOK := toFloat(expected)
		return aOK && bOK && a > b
	case OperatorLessThan:
		a, aOK := toFloat(actual)
		b, bOK := toFloat(expected)
		return aOK && bOK && a < b
	case OperatorContains:
		return containsValue(actual, expected)
	case OperatorNotContains:
		return !containsValue(actual, expected)
	}
	// unknown operator never matches
	return false
}

// valuesEqual compares numerically when both sides parse as numbers,
// otherwise on the string form. No date parsing.
func valuesEqual(a, b interface{}) bool {
	if af, aOK := toFloat(a); aOK {
		if bf, bOK := toFloat(b); bOK {
			return af == bf
		}
	}
	return stringify(a) == stringify(b)
}

// containsValue tests membership when the resolved value is a sequence,
// substring containment otherwise.
func containsValue(actual, expected interface{}) bool {
	rv := reflect.ValueOf(actual)
	if actual != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		want := stringify(expected)
		for i := 0; i < rv.Len(); i++ {
			if stringify(rv.Index(i).Interface()) == want {
				return true
			}
		}
		return false
	}
	return strings.Contains(stringify(actual), stringify(expected))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
