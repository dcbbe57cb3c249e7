package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
)

const (
	msgGenerated        = "Tasks generated successfully"
	msgNoFrequencyRules = "No rules found for the specified frequency."
	msgNoActiveRules    = "No active rules found."
	msgNoAssignee       = "No USER or MANAGER assigned to this client"

	generatorFrequency   = "frequency"
	generatorWithRules   = "with_rules"
	generatorFixedTitles = "fixed_titles"
	generatorConditional = "conditional_notes"
)

// fixedTitles are the monthly document tasks, in creation order.
var fixedTitles = []string{
	domain.TitleAvemActe,
	domain.TitleIntrodusActe,
	domain.TitleVerificatActe,
	domain.TitleLunaPrintata,
}

// declarationTitles receive the rule titles or conditional notes.
var declarationTitles = []string{
	domain.TitleGeneratDeclaratii,
	domain.TitleDepusDeclaratii,
}

// GenerationRecorder receives the outcome of generator runs.
type GenerationRecorder interface {
	RecordGeneration(generator string, created, skipped int, err error)
	IncrNoteAction(action string)
}

type generationService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	ruleRepo   portsrepo.RuleReader
	taskRepo   portsrepo.TaskRepositoryFacade
	recorder   GenerationRecorder
	now        func() time.Time
}

// GenerationOption is a functional option for configuring the generation service
type GenerationOption func(*generationService)

// WithGenerationRecorder reports run outcomes to rec.
func WithGenerationRecorder(rec GenerationRecorder) GenerationOption {
	return func(s *generationService) {
		s.recorder = rec
	}
}

// WithClock replaces time.Now, used for tasks dated today.
func WithClock(now func() time.Time) GenerationOption {
	return func(s *generationService) {
		s.now = now
	}
}

// NewGenerationService creates the task generation service with the provided options
func NewGenerationService(
	clientRepo portsrepo.ClientRepositoryFacade,
	ruleRepo portsrepo.RuleReader,
	taskRepo portsrepo.TaskRepositoryFacade,
	options ...GenerationOption,
) portssvc.TaskGenerationSvc {
	svc := &generationService{
		clientRepo: clientRepo,
		ruleRepo:   ruleRepo,
		taskRepo:   taskRepo,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TaskGenerationSvc = (*generationService)(nil)

func (s *generationService) record(generator string, report *domain.GenerationReport, err error) {
	if s.recorder == nil {
		return
	}
	created, skipped := 0, 0
	if report != nil {
		created, skipped = len(report.Tasks), report.Skipped
	}
	s.recorder.RecordGeneration(generator, created, skipped, err)
}

// preload fetches the rules and every client concurrently.
func (s *generationService) preload(ctx context.Context, filter portsrepo.RuleFilter, needRules bool) ([]domain.Rule, []domain.Client, error) {
	var rules []domain.Rule
	var clients []domain.Client

	g, gctx := errgroup.WithContext(ctx)
	if needRules {
		g.Go(func() error {
			var err error
			rules, err = s.ruleRepo.ListRules(gctx, filter)
			return err
		})
	}
	g.Go(func() error {
		var err error
		clients, err = s.clientRepo.ListClients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load rules and clients")
		return nil, nil, err
	}
	return rules, clients, nil
}

// assigneeResolver memoizes the assignee of each client for one run.
type assigneeResolver struct {
	repo  portsrepo.ClientRepositoryFacade
	cache map[int64]*domain.ClientUser
}

func newAssigneeResolver(repo portsrepo.ClientRepositoryFacade) *assigneeResolver {
	return &assigneeResolver{repo: repo, cache: make(map[int64]*domain.ClientUser)}
}

func (r *assigneeResolver) resolve(ctx context.Context, clientID int64) (*domain.ClientUser, error) {
	if u, ok := r.cache[clientID]; ok {
		return u, nil
	}
	users, err := r.repo.ListClientUsers(ctx, clientID)
	if err != nil {
		return nil, err
	}
	var picked *domain.ClientUser
	if u, ok := domain.PickAssignee(users); ok {
		picked = &u
	}
	r.cache[clientID] = picked
	return picked, nil
}

// createTask inserts task unless skipExisting finds the same (client, title,
// date). The boolean reports whether a row was written.
func (s *generationService) createTask(ctx context.Context, task *domain.Task, opts portssvc.GenerationOptions) (bool, error) {
	if opts.SkipExisting && task.Date != nil {
		_, err := s.taskRepo.FindTaskByKey(ctx, task.ClientID, task.Title, *task.Date)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
	}
	if stage, ok := domain.StageForTitle(task.Title); ok && task.Stage == nil {
		task.Stage = &stage
	}
	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		return false, err
	}
	return true, nil
}

func (s *generationService) add(ctx context.Context, report *domain.GenerationReport, task domain.Task, opts portssvc.GenerationOptions) error {
	created, err := s.createTask(ctx, &task, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to create task",
			slog.String("title", task.Title), slog.Int64("client_id", task.ClientID))
		return err
	}
	if created {
		report.Tasks = append(report.Tasks, task)
	} else {
		report.Skipped++
	}
	return nil
}

func (s *generationService) GenerateByFrequency(ctx context.Context, frequency domain.Frequency, period *domain.Period, opts portssvc.GenerationOptions) (report *domain.GenerationReport, err error) {
	defer func() { s.record(generatorFrequency, report, err) }()

	if !frequency.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid or missing frequency")
	}
	date := domain.Today(s.now())
	if period != nil {
		if err := period.Validate(); err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		date = period.FirstDay()
	}

	rules, clients, err := s.preload(ctx, portsrepo.RuleFilter{ActiveOnly: true, Frequency: &frequency}, true)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return &domain.GenerationReport{Message: msgNoFrequencyRules, Tasks: []domain.Task{}}, nil
	}

	report = &domain.GenerationReport{Message: msgGenerated, Tasks: []domain.Task{}}
	assignees := newAssigneeResolver(s.clientRepo)
	for _, rule := range rules {
		for _, client := range clients {
			if !rule.Matches(client) {
				continue
			}
			assignee, err := assignees.resolve(ctx, client.ClientID)
			if err != nil {
				return nil, err
			}
			if assignee == nil {
				s.LogDebug(ctx, "Client has no assignee, skipping", slog.Int64("client_id", client.ClientID))
				continue
			}
			taskDate := date
			task := domain.Task{
				Title:    rule.TaskTitle,
				Notes:    rule.TaskNotes,
				Date:     &taskDate,
				UserID:   assignee.UserID,
				ClientID: client.ClientID,
			}
			if err := s.add(ctx, report, task, opts); err != nil {
				return nil, err
			}
		}
	}

	s.LogInfo(ctx, "Frequency generation finished",
		slog.String("frequency", string(frequency)),
		slog.Int("created", len(report.Tasks)),
		slog.Int("skipped", report.Skipped))
	return report, nil
}

func (s *generationService) GenerateWithRules(ctx context.Context, period domain.Period, opts portssvc.GenerationOptions) (report *domain.GenerationReport, err error) {
	defer func() { s.record(generatorWithRules, report, err) }()

	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	rules, clients, err := s.preload(ctx, portsrepo.RuleFilter{ActiveOnly: true}, true)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return &domain.GenerationReport{Message: msgNoActiveRules, Tasks: []domain.Task{}}, nil
	}

	report = &domain.GenerationReport{Message: msgGenerated, Tasks: []domain.Task{}}
	assignees := newAssigneeResolver(s.clientRepo)
	date := period.DeclarationsDay()
	for _, client := range clients {
		var titles []string
		for _, rule := range rules {
			if rule.Frequency.AppliesTo(period) && rule.Matches(client) {
				titles = append(titles, rule.TaskTitle)
			}
		}
		notes := domain.JoinRuleTitles(titles)
		if notes == "" {
			continue
		}
		assignee, err := assignees.resolve(ctx, client.ClientID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			s.LogDebug(ctx, "Client has no assignee, skipping", slog.Int64("client_id", client.ClientID))
			continue
		}
		for _, title := range declarationTitles {
			taskDate, taskNotes := date, notes
			task := domain.Task{
				Title:    title,
				Notes:    &taskNotes,
				Date:     &taskDate,
				UserID:   assignee.UserID,
				ClientID: client.ClientID,
			}
			if err := s.add(ctx, report, task, opts); err != nil {
				return nil, err
			}
		}
	}

	s.LogInfo(ctx, "Rule aggregation generation finished",
		slog.Int("month", period.Month), slog.Int("year", period.Year),
		slog.Int("created", len(report.Tasks)),
		slog.Int("skipped", report.Skipped))
	return report, nil
}

func (s *generationService) GenerateFixedTitles(ctx context.Context, period domain.Period, opts portssvc.GenerationOptions) (report *domain.GenerationReport, err error) {
	defer func() { s.record(generatorFixedTitles, report, err) }()

	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	_, clients, err := s.preload(ctx, portsrepo.RuleFilter{}, false)
	if err != nil {
		return nil, err
	}

	report = &domain.GenerationReport{Message: msgGenerated, Tasks: []domain.Task{}}
	assignees := newAssigneeResolver(s.clientRepo)
	date := period.FirstDay()
	for _, client := range clients {
		assignee, err := assignees.resolve(ctx, client.ClientID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			continue
		}
		for _, title := range fixedTitles {
			taskDate := date
			task := domain.Task{
				Title:    title,
				Date:     &taskDate,
				UserID:   assignee.UserID,
				ClientID: client.ClientID,
			}
			if err := s.add(ctx, report, task, opts); err != nil {
				return nil, err
			}
		}
	}

	s.LogInfo(ctx, "Fixed title generation finished",
		slog.Int("month", period.Month), slog.Int("year", period.Year),
		slog.Int("created", len(report.Tasks)),
		slog.Int("skipped", report.Skipped))
	return report, nil
}

func (s *generationService) GenerateConditionalNotes(ctx context.Context, clientID int64, period domain.Period, note string) (report *domain.NoteReport, err error) {
	defer func() {
		if s.recorder == nil {
			return
		}
		created := 0
		if report != nil {
			for _, a := range report.Actions {
				s.recorder.IncrNoteAction(string(a.Action))
				if a.Action == domain.NoteCreated {
					created++
				}
			}
		}
		s.recorder.RecordGeneration(generatorConditional, created, 0, err)
	}()

	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	note = strings.TrimSpace(note)
	if note == "" {
		note = domain.DefaultConditionalNote
	}
	if strings.Contains(note, ",") {
		return nil, apperrors.NewValidationFailedError("note must be a single value without commas")
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load client", slog.Int64("client_id", clientID))
		}
		return nil, err
	}
	assignee, err := newAssigneeResolver(s.clientRepo).resolve(ctx, client.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load client users", slog.Int64("client_id", clientID))
		return nil, err
	}
	if assignee == nil {
		return nil, apperrors.NewValidationFailedError(msgNoAssignee)
	}

	report = &domain.NoteReport{ClientID: client.ClientID, Period: period, Note: note}
	date := period.DeclarationsDay()
	for _, title := range declarationTitles {
		action, err := s.applyNote(ctx, client.ClientID, assignee.UserID, title, date, note)
		if err != nil {
			s.LogError(ctx, err, "Failed to apply note", slog.String("title", title), slog.Int64("client_id", clientID))
			return nil, err
		}
		report.Actions = append(report.Actions, action)
	}

	s.LogInfo(ctx, "Conditional notes processed",
		slog.Int64("client_id", clientID), slog.String("note", note),
		slog.Int("month", period.Month), slog.Int("year", period.Year))
	return report, nil
}

// applyNote appends note to the (client, title, date) task, creating the task
// when it does not exist.
func (s *generationService) applyNote(ctx context.Context, clientID, userID int64, title string, date time.Time, note string) (domain.NoteAction, error) {
	existing, err := s.taskRepo.FindTaskByKey(ctx, clientID, title, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.NoteAction{}, err
	}

	if existing == nil {
		notes := note
		task := domain.Task{
			Title:    title,
			Notes:    &notes,
			Date:     &date,
			UserID:   userID,
			ClientID: clientID,
		}
		if _, err := s.createTask(ctx, &task, portssvc.GenerationOptions{}); err != nil {
			return domain.NoteAction{}, err
		}
		return domain.NoteAction{Action: domain.NoteCreated, Title: title, TaskID: task.TaskID, Notes: notes}, nil
	}

	current := ""
	if existing.Notes != nil {
		current = *existing.Notes
	}
	updated, changed := domain.AppendNote(current, note)
	if !changed {
		return domain.NoteAction{
			Action: domain.NoteSkipped,
			Title:  title,
			TaskID: existing.TaskID,
			Notes:  current,
			Reason: domain.NoteExistsReason(note),
		}, nil
	}

	existing.Notes = &updated
	if err := s.taskRepo.UpdateTask(ctx, existing); err != nil {
		return domain.NoteAction{}, fmt.Errorf("failed to update notes of task %d: %w", existing.TaskID, err)
	}
	return domain.NoteAction{Action: domain.NoteUpdated, Title: title, TaskID: existing.TaskID, Notes: updated}, nil
}
