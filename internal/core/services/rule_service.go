package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
)

type ruleService struct {
	BaseService
	ruleRepo portsrepo.RuleRepositoryFacade
}

// NewRuleService creates the rule service.
func NewRuleService(ruleRepo portsrepo.RuleRepositoryFacade) portssvc.RuleSvcFacade {
	return &ruleService{ruleRepo: ruleRepo}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

func (s *ruleService) GetRule(ctx context.Context, name string) (*domain.Rule, error) {
	rule, err := s.ruleRepo.FindRuleByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find rule", slog.String("rule", name))
		}
		return nil, err
	}
	return rule, nil
}

func (s *ruleService) ListRules(ctx context.Context, filter portsrepo.RuleFilter) ([]domain.Rule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules")
		return nil, err
	}
	if rules == nil {
		return []domain.Rule{}, nil
	}
	return rules, nil
}

// validateRule re-checks what request binding checks, since seed files
// reach the service without passing through gin.
func validateRule(rule domain.Rule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return apperrors.NewValidationFailedError("rule name is required")
	}
	if strings.TrimSpace(rule.TaskTitle) == "" {
		return apperrors.NewValidationFailedError(fmt.Sprintf("rule %q: taskTitle is required", rule.Name))
	}
	if !rule.Frequency.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("rule %q: invalid frequency %q", rule.Name, rule.Frequency))
	}
	for _, c := range rule.Conditions {
		if !domain.IsClientField(c.Field) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("rule %q: unknown field %q, allowed: %s",
				rule.Name, c.Field, strings.Join(domain.ClientFieldNames(), ", ")))
		}
		if !c.Operator.IsValid() {
			return apperrors.NewValidationFailedError(fmt.Sprintf("rule %q: invalid operator %q", rule.Name, c.Operator))
		}
	}
	return nil
}

func (s *ruleService) UpsertRule(ctx context.Context, name string, req dto.UpsertRuleRequest) (*domain.Rule, error) {
	rule := req.ToDomain(strings.TrimSpace(name))
	if err := validateRule(rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.UpsertRule(ctx, &rule); err != nil {
		s.LogError(ctx, err, "Failed to upsert rule", slog.String("rule", rule.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Rule stored", slog.String("rule", rule.Name), slog.Int("conditions", len(rule.Conditions)))
	return &rule, nil
}

func (s *ruleService) SetRuleActive(ctx context.Context, name string, active bool) error {
	if err := s.ruleRepo.SetRuleActive(ctx, name, active); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle rule", slog.String("rule", name))
		}
		return err
	}
	s.LogInfo(ctx, "Rule toggled", slog.String("rule", name), slog.Bool("active", active))
	return nil
}

func (s *ruleService) DeleteRule(ctx context.Context, name string) error {
	if err := s.ruleRepo.DeleteRule(ctx, name); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete rule", slog.String("rule", name))
		}
		return err
	}
	s.LogInfo(ctx, "Rule deleted", slog.String("rule", name))
	return nil
}

// SeedRules validates the whole file before writing any rule.
func (s *ruleService) SeedRules(ctx context.Context, file dto.RuleSeedFile) (int, error) {
	rules := make([]domain.Rule, len(file.Rules))
	seen := make(map[string]struct{}, len(file.Rules))
	for i, seed := range file.Rules {
		rules[i] = seed.UpsertRuleRequest.ToDomain(strings.TrimSpace(seed.Name))
		if err := validateRule(rules[i]); err != nil {
			return 0, err
		}
		if _, dup := seen[rules[i].Name]; dup {
			return 0, apperrors.NewValidationFailedError(fmt.Sprintf("rule %q appears twice", rules[i].Name))
		}
		seen[rules[i].Name] = struct{}{}
	}

	for i := range rules {
		if err := s.ruleRepo.UpsertRule(ctx, &rules[i]); err != nil {
			s.LogError(ctx, err, "Failed to seed rule", slog.String("rule", rules[i].Name))
			return i, err
		}
	}
	s.LogInfo(ctx, "Rules seeded", slog.Int("count", len(rules)))
	return len(rules), nil
}
