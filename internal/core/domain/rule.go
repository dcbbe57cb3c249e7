package domain

import (
	"strings"
)

// Frequency is how often a rule's obligation recurs.
type Frequency string

const (
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	return f == FrequencyMonthly || f == FrequencyQuarterly
}

// AppliesTo reports whether the frequency contributes to the given period.
// Quarterly obligations fall due in March, June, September and December.
func (f Frequency) AppliesTo(p Period) bool {
	switch f {
	case FrequencyMonthly:
		return true
	case FrequencyQuarterly:
		return p.IsQuarterEnd()
	}
	return false
}

// Operator is the comparison a condition performs.
type Operator string

const (
	OperatorEquals Operator = "EQUALS"
	OperatorIn     Operator = "IN"
	OperatorIsTrue Operator = "IS_TRUE"
)

// IsValid reports whether o is a known operator.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorEquals, OperatorIn, OperatorIsTrue:
		return true
	}
	return false
}

// Condition is one predicate over a client attribute.
type Condition struct {
	ConditionID int64    `json:"conditionID,omitempty" yaml:"-"`
	Field       string   `json:"field" yaml:"field"`
	Operator    Operator `json:"operator" yaml:"operator"`
	Value       string   `json:"value" yaml:"value"`
}

// Matches evaluates the condition against a client. Unknown fields and
// unknown operators never match.
func (c Condition) Matches(client Client) bool {
	v := client.field(c.Field)
	if !v.present {
		return false
	}
	switch c.Operator {
	case OperatorEquals:
		return !v.isBool && v.str == c.Value
	case OperatorIn:
		s := v.String()
		for _, option := range strings.Split(c.Value, ",") {
			if strings.TrimSpace(option) == s {
				return true
			}
		}
		return false
	case OperatorIsTrue:
		return v.truthy()
	default:
		return false
	}
}

// MatchesAll reports whether every condition matches. An empty set matches.
func MatchesAll(client Client, conditions []Condition) bool {
	for _, c := range conditions {
		if !c.Matches(client) {
			return false
		}
	}
	return true
}

// Rule is a declarative condition set plus the task it produces.
type Rule struct {
	RuleID      int64       `json:"ruleID"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Frequency   Frequency   `json:"frequency"`
	TaskTitle   string      `json:"taskTitle"`
	TaskNotes   *string     `json:"taskNotes,omitempty"`
	Active      bool        `json:"active"`
	Conditions  []Condition `json:"conditions"`
	AuditFields
}

// Matches reports whether the rule applies to the client.
func (r Rule) Matches(client Client) bool {
	return MatchesAll(client, r.Conditions)
}
