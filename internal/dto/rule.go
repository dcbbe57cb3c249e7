package dto

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// ConditionRequest is one condition of a rule. Field must be a client
// attribute from the allow-list.
type ConditionRequest struct {
	Field    string `json:"field" yaml:"field" binding:"required,clientfield"`
	Operator string `json:"operator" yaml:"operator" binding:"required,oneof=EQUALS IN IS_TRUE"`
	Value    string `json:"value" yaml:"value"`
}

// UpsertRuleRequest creates or replaces a rule by name.
type UpsertRuleRequest struct {
	Description string             `json:"description" yaml:"description"`
	Frequency   string             `json:"frequency" yaml:"frequency" binding:"required,oneof=MONTHLY QUARTERLY"`
	TaskTitle   string             `json:"taskTitle" yaml:"taskTitle" binding:"required,max=255"`
	TaskNotes   *string            `json:"taskNotes" yaml:"taskNotes"`
	Active      *bool              `json:"active" yaml:"active"`
	Conditions  []ConditionRequest `json:"conditions" yaml:"conditions" binding:"dive"`
}

// RuleSeed is one entry of the rules seed file.
type RuleSeed struct {
	Name              string `yaml:"name"`
	UpsertRuleRequest `yaml:",inline"`
}

// RuleSeedFile is the document loaded by the seed command.
type RuleSeedFile struct {
	Rules []RuleSeed `yaml:"rules"`
}

// SetRuleActiveRequest toggles a rule.
type SetRuleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ListRulesParams filters the rule listing.
type ListRulesParams struct {
	ActiveOnly bool   `form:"activeOnly"`
	Frequency  string `form:"frequency" binding:"omitempty,oneof=MONTHLY QUARTERLY"`
}

// ToDomain builds the rule named name.
func (r UpsertRuleRequest) ToDomain(name string) domain.Rule {
	rule := domain.Rule{
		Name:        name,
		Description: r.Description,
		Frequency:   domain.Frequency(r.Frequency),
		TaskTitle:   r.TaskTitle,
		TaskNotes:   r.TaskNotes,
		Active:      true,
		Conditions:  make([]domain.Condition, len(r.Conditions)),
	}
	if r.Active != nil {
		rule.Active = *r.Active
	}
	for i, c := range r.Conditions {
		rule.Conditions[i] = domain.Condition{
			Field:    c.Field,
			Operator: domain.Operator(c.Operator),
			Value:    c.Value,
		}
	}
	return rule
}
