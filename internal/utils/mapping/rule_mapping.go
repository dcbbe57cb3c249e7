package mapping

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
)

// ToDomainRule converts a model Rule and its condition rows to a domain Rule
func ToDomainRule(m models.Rule, conditions []models.RuleCondition) domain.Rule {
	rule := domain.Rule{
		RuleID:      m.RuleID,
		Name:        m.Name,
		Description: m.Description,
		Frequency:   domain.Frequency(m.Frequency),
		TaskTitle:   m.TaskTitle,
		TaskNotes:   m.TaskNotes,
		Active:      m.Active,
		Conditions:  make([]domain.Condition, 0, len(conditions)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for _, c := range conditions {
		rule.Conditions = append(rule.Conditions, domain.Condition{
			ConditionID: c.ConditionID,
			Field:       c.Field,
			Operator:    domain.Operator(c.Operator),
			Value:       c.Value,
		})
	}
	return rule
}
