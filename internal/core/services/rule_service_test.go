package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuleService_UpsertRuleValidatesFieldsAndOperators(t *testing.T) {
	tests := []struct {
		name string
		req  dto.UpsertRuleRequest
	}{
		{
			name: "unknown field",
			req: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "D300", Conditions: []dto.ConditionRequest{
				{Field: "parola", Operator: "EQUALS", Value: "x"},
			}},
		},
		{
			name: "unknown operator",
			req: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "D300", Conditions: []dto.ConditionRequest{
				{Field: "platitorTVA", Operator: "LIKE", Value: "DA"},
			}},
		},
		{name: "bad frequency", req: dto.UpsertRuleRequest{Frequency: "YEARLY", TaskTitle: "D300"}},
		{name: "empty title", req: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRuleRepository)
			svc := services.NewRuleService(repo)

			rule, err := svc.UpsertRule(context.Background(), "Depunere 300", tt.req)

			assert.Nil(t, rule)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			repo.AssertNotCalled(t, "UpsertRule", mock.Anything, mock.Anything)
		})
	}
}

func TestRuleService_UpsertRuleStoresRule(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := services.NewRuleService(repo)
	ctx := context.Background()

	repo.On("UpsertRule", ctx, mock.MatchedBy(func(r *domain.Rule) bool {
		return r.Name == "Depunere 300" && r.Active && len(r.Conditions) == 1 &&
			r.Conditions[0].Operator == domain.OperatorIn
	})).Return(nil).Once()

	rule, err := svc.UpsertRule(ctx, " Depunere 300 ", dto.UpsertRuleRequest{
		Frequency: "MONTHLY",
		TaskTitle: "Depunere 300",
		Conditions: []dto.ConditionRequest{
			{Field: "platitorTVA", Operator: "IN", Value: "DA_LUNAR"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, rule.Frequency)
	repo.AssertExpectations(t)
}

func TestRuleService_SeedRules(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := services.NewRuleService(repo)
	ctx := context.Background()
	inactive := false

	repo.On("UpsertRule", ctx, mock.AnythingOfType("*domain.Rule")).Return(nil).Twice()

	n, err := svc.SeedRules(ctx, dto.RuleSeedFile{Rules: []dto.RuleSeed{
		{Name: "Depunere 112", UpsertRuleRequest: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "Depunere 112"}},
		{Name: "Depunere 100", UpsertRuleRequest: dto.UpsertRuleRequest{Frequency: "QUARTERLY", TaskTitle: "Depunere 100", Active: &inactive}},
	}})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestRuleService_SeedRulesRejectsWholeFileOnError(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := services.NewRuleService(repo)

	_, err := svc.SeedRules(context.Background(), dto.RuleSeedFile{Rules: []dto.RuleSeed{
		{Name: "A", UpsertRuleRequest: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "A"}},
		{Name: "A", UpsertRuleRequest: dto.UpsertRuleRequest{Frequency: "MONTHLY", TaskTitle: "A again"}},
	}})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpsertRule", mock.Anything, mock.Anything)
}

func TestRuleService_SetRuleActiveNotFound(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := services.NewRuleService(repo)
	ctx := context.Background()
	repo.On("SetRuleActive", ctx, "missing", false).Return(apperrors.NewNotFoundError(`rule "missing" not found`))

	err := svc.SetRuleActive(ctx, "missing", false)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
