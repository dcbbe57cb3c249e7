package domain

import "time"

// Titles of the tasks created by the period generators.
const (
	TitleAvemActe          = "Avem acte"
	TitleIntrodusActe      = "Introdus acte"
	TitleVerificatActe     = "Verificat acte"
	TitleLunaPrintata      = "Luna printata"
	TitleGeneratDeclaratii = "Generat declaratii"
	TitleDepusDeclaratii   = "Depus declaratii"
)

// Task is one unit of work for a client, optionally produced by a generator.
// Its month is the year and month of Date; the day is a convention.
type Task struct {
	TaskID    int64      `json:"taskID"`
	Title     string     `json:"title"`
	Date      *time.Time `json:"date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Objective *string    `json:"objective,omitempty"`
	Blocked   *string    `json:"blocked,omitempty"`
	Done      bool       `json:"done"`
	Stage     *Stage     `json:"stage,omitempty"`
	UserID    int64      `json:"userID"`
	ClientID  int64      `json:"clientID"`
	AuditFields
}

// TaskView is a task joined with the display data of its client and assignee.
// ClientName is nil when the client row is gone.
type TaskView struct {
	Task
	ClientName *string `json:"clientName,omitempty"`
	ClientTip  *string `json:"clientTip,omitempty"`
	UserName   *string `json:"userName,omitempty"`
	UserEmail  *string `json:"userEmail,omitempty"`
}

// AssigneeLabel is the assignee's name, else email, else empty.
func (v TaskView) AssigneeLabel() string {
	if v.UserName != nil && *v.UserName != "" {
		return *v.UserName
	}
	if v.UserEmail != nil {
		return *v.UserEmail
	}
	return ""
}

// Viewer is the authenticated caller a task listing is computed for.
type Viewer struct {
	UserID int64
	Role   Role
}

// CanSee reports whether the viewer may see the task. A nil viewer sees nothing.
func (v *Viewer) CanSee(t Task) bool {
	if v == nil {
		return false
	}
	if v.Role.SeesAllTasks() {
		return true
	}
	return t.UserID == v.UserID
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	ClientID *int64
	Done     *bool
	Period   *Period
	// AssigneeID restricts results to one assignee; set for non-privileged viewers.
	AssigneeID *int64
}
