package services

import (
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil recorder disables generation metrics.
func NewServiceContainer(repos portsrepo.RepositoryProvider, recorder GenerationRecorder) *portssvc.ServiceContainer {
	var genOpts []GenerationOption
	if recorder != nil {
		genOpts = append(genOpts, WithGenerationRecorder(recorder))
	}

	return &portssvc.ServiceContainer{
		Client:     NewClientService(repos.ClientRepo, repos.UserRepo),
		Rule:       NewRuleService(repos.RuleRepo),
		Task:       NewTaskService(repos.TaskRepo),
		User:       NewUserService(repos.UserRepo),
		Generation: NewGenerationService(repos.ClientRepo, repos.RuleRepo, repos.TaskRepo, genOpts...),
		Situation:  NewSituationService(repos.TaskRepo),
	}
}
