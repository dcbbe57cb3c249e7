package repositories

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// RuleFilter narrows a rule listing.
type RuleFilter struct {
	ActiveOnly bool
	Frequency  *domain.Frequency
}

// RuleReader defines read operations for rules
type RuleReader interface {
	// FindRuleByName retrieves a rule with its conditions.
	FindRuleByName(ctx context.Context, name string) (*domain.Rule, error)

	// ListRules retrieves rules with their conditions, ordered by name.
	ListRules(ctx context.Context, filter RuleFilter) ([]domain.Rule, error)
}

// RuleWriter defines write operations for rules
type RuleWriter interface {
	// UpsertRule creates or replaces the rule with the same name, including
	// its whole condition set, in one transaction.
	UpsertRule(ctx context.Context, rule *domain.Rule) error

	SetRuleActive(ctx context.Context, name string, active bool) error
	DeleteRule(ctx context.Context, name string) error
}

// RuleRepositoryFacade combines all rule-related repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
