package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertUserByEmail(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) AssignUser(ctx context.Context, clientID, userID int64) error {
	args := m.Called(ctx, clientID, userID)
	return args.Error(0)
}

func (m *MockClientRepository) UnassignUser(ctx context.Context, clientID, userID int64) error {
	args := m.Called(ctx, clientID, userID)
	return args.Error(0)
}

func (m *MockClientRepository) ListClientUsers(ctx context.Context, clientID int64) ([]domain.ClientUser, error) {
	args := m.Called(ctx, clientID)
	var users []domain.ClientUser
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.ClientUser)
	}
	return users, args.Error(1)
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

// --- Mock RuleRepository ---

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindRuleByName(ctx context.Context, name string) (*domain.Rule, error) {
	args := m.Called(ctx, name)
	var rule *domain.Rule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.Rule)
	}
	return rule, args.Error(1)
}

func (m *MockRuleRepository) ListRules(ctx context.Context, filter portsrepo.RuleFilter) ([]domain.Rule, error) {
	args := m.Called(ctx, filter)
	var rules []domain.Rule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.Rule)
	}
	return rules, args.Error(1)
}

func (m *MockRuleRepository) UpsertRule(ctx context.Context, rule *domain.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) SetRuleActive(ctx context.Context, name string, active bool) error {
	args := m.Called(ctx, name, active)
	return args.Error(0)
}

func (m *MockRuleRepository) DeleteRule(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// --- In-memory task store ---

// fakeTaskRepository keeps tasks in memory so generator reruns can observe
// earlier writes.
type fakeTaskRepository struct {
	mu      sync.Mutex
	tasks   []domain.Task
	nextID  int64
	clients map[int64]domain.Client
	users   map[int64]domain.User
	saveErr error
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{
		nextID:  1,
		clients: make(map[int64]domain.Client),
		users:   make(map[int64]domain.User),
	}
}

var _ portsrepo.TaskRepositoryFacade = (*fakeTaskRepository)(nil)

func (f *fakeTaskRepository) notFound(taskID int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Task with id %d not found", taskID))
}

func (f *fakeTaskRepository) FindTaskByID(_ context.Context, taskID int64) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.TaskID == taskID {
			found := t
			return &found, nil
		}
	}
	return nil, f.notFound(taskID)
}

func (f *fakeTaskRepository) FindTaskByKey(_ context.Context, clientID int64, title string, date time.Time) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ClientID == clientID && t.Title == title && t.Date != nil && t.Date.Equal(date) {
			found := t
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no task")
}

func (f *fakeTaskRepository) view(t domain.Task) domain.TaskView {
	v := domain.TaskView{Task: t}
	if c, ok := f.clients[t.ClientID]; ok {
		name, tip := c.Denumire, c.Tip
		v.ClientName, v.ClientTip = &name, &tip
	}
	if u, ok := f.users[t.UserID]; ok {
		email := u.Email
		v.UserName, v.UserEmail = u.Name, &email
	}
	return v
}

func (f *fakeTaskRepository) ListTasks(_ context.Context, filter domain.TaskFilter, limit int, after *portsrepo.TaskCursor) ([]domain.TaskView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sorted := append([]domain.Task(nil), f.tasks...)
	sort.SliceStable(sorted, func(i, j int) bool { return taskBefore(sorted[i], sorted[j]) })

	var out []domain.TaskView
	for _, t := range sorted {
		if filter.ClientID != nil && t.ClientID != *filter.ClientID {
			continue
		}
		if filter.Done != nil && t.Done != *filter.Done {
			continue
		}
		if filter.AssigneeID != nil && t.UserID != *filter.AssigneeID {
			continue
		}
		if filter.Period != nil && (t.Date == nil || domain.PeriodOf(*t.Date) != *filter.Period) {
			continue
		}
		if after != nil && !taskBefore(domain.Task{TaskID: after.TaskID, Date: after.Date}, t) {
			continue
		}
		out = append(out, f.view(t))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// taskBefore orders by date desc with nulls last, then id desc.
func taskBefore(a, b domain.Task) bool {
	switch {
	case a.Date != nil && b.Date == nil:
		return true
	case a.Date == nil && b.Date != nil:
		return false
	case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
		return a.Date.After(*b.Date)
	}
	return a.TaskID > b.TaskID
}

func (f *fakeTaskRepository) ListTaskViews(_ context.Context, assigneeID *int64) ([]domain.TaskView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TaskView
	for _, t := range f.tasks {
		if assigneeID != nil && t.UserID != *assigneeID {
			continue
		}
		out = append(out, f.view(t))
	}
	return out, nil
}

func (f *fakeTaskRepository) SaveTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	task.TaskID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepository) UpdateTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].TaskID == task.TaskID {
			f.tasks[i] = *task
			return nil
		}
	}
	return f.notFound(task.TaskID)
}

func (f *fakeTaskRepository) DeleteTask(_ context.Context, taskID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].TaskID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return f.notFound(taskID)
}

func (f *fakeTaskRepository) all() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...)
}

func strPtr(s string) *string { return &s }
