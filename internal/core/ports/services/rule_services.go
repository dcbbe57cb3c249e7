package services

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
)

// RuleReaderSvc defines read operations for rules
type RuleReaderSvc interface {
	GetRule(ctx context.Context, name string) (*domain.Rule, error)
	ListRules(ctx context.Context, filter portsrepo.RuleFilter) ([]domain.Rule, error)
}

// RuleWriterSvc defines write operations for rules
type RuleWriterSvc interface {
	// UpsertRule validates and stores the rule under name.
	UpsertRule(ctx context.Context, name string, req dto.UpsertRuleRequest) (*domain.Rule, error)
	SetRuleActive(ctx context.Context, name string, active bool) error
	DeleteRule(ctx context.Context, name string) error

	// SeedRules upserts every rule of a seed file and returns how many were stored.
	SeedRules(ctx context.Context, file dto.RuleSeedFile) (int, error)
}

// RuleSvcFacade combines all rule-related service interfaces
type RuleSvcFacade interface {
	RuleReaderSvc
	RuleWriterSvc
}
