package dto

import (
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// CreateTaskRequest defines the data needed to create a task by hand.
type CreateTaskRequest struct {
	Title     string  `json:"title" binding:"required,max=255"`
	Date      *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes"`
	Objective *string `json:"objective"`
	Blocked   *string `json:"blocked"`
	Done      bool    `json:"done"`
	Stage     *string `json:"stage" binding:"omitempty,oneof=avemActe introdusActe verificareLuna generatDeclaratii depusDeclaratii lunaPrintata"`
	UserID    int64   `json:"userID" binding:"required,gt=0"`
	ClientID  int64   `json:"clientID" binding:"required,gt=0"`
}

// UpdateTaskRequest holds the fields a task update may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateTaskRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=255"`
	Date      *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes"`
	Objective *string `json:"objective"`
	Blocked   *string `json:"blocked"`
	Done      *bool   `json:"done"`
	// Stage overrides title classification; an empty string clears it.
	Stage  *string `json:"stage" binding:"omitempty,oneof=avemActe introdusActe verificareLuna generatDeclaratii depusDeclaratii lunaPrintata"`
	UserID *int64  `json:"userID" binding:"omitempty,gt=0"`
}

// ListTasksParams defines query parameters for listing tasks.
type ListTasksParams struct {
	ClientID  *int64 `form:"clientId" binding:"omitempty,gt=0"`
	Done      *bool  `form:"done"`
	Month     string `form:"month"`
	Year      string `form:"year"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken string `form:"nextToken"`
}

type TaskResponse struct {
	TaskID    int64   `json:"taskID"`
	Title     string  `json:"title"`
	Date      *string `json:"date,omitempty"`
	DateTs    *int64  `json:"dateTs,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Objective *string `json:"objective,omitempty"`
	Blocked   *string `json:"blocked,omitempty"`
	Done      bool    `json:"done"`
	Stage     *string `json:"stage,omitempty"`
	UserID    int64   `json:"userID"`
	ClientID  int64   `json:"clientID"`
	User      string  `json:"user,omitempty"`
	Client    string  `json:"client,omitempty"`
}

// ListTasksResponse wraps one page of tasks.
type ListTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	NextToken *string        `json:"nextToken,omitempty"`
}

func ToTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		TaskID:    t.TaskID,
		Title:     t.Title,
		Notes:     t.Notes,
		Objective: t.Objective,
		Blocked:   t.Blocked,
		Done:      t.Done,
		UserID:    t.UserID,
		ClientID:  t.ClientID,
	}
	if t.Date != nil {
		d := t.Date.UTC().Format(time.DateOnly)
		ts := t.Date.UnixMilli()
		resp.Date = &d
		resp.DateTs = &ts
	}
	if t.Stage != nil {
		s := string(*t.Stage)
		resp.Stage = &s
	}
	return resp
}

func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i])
	}
	return out
}

func ToTaskViewResponse(v *domain.TaskView) TaskResponse {
	resp := ToTaskResponse(&v.Task)
	resp.User = v.AssigneeLabel()
	if v.ClientName != nil {
		resp.Client = *v.ClientName
	}
	return resp
}

// ParseDate parses an optional YYYY-MM-DD value as a UTC day.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
