package models

import "time"

// Task is a row of the tasks table.
type Task struct {
	TaskID    int64      `db:"id"`
	Title     string     `db:"title"`
	Date      *time.Time `db:"date"`
	Notes     *string    `db:"notes"`
	Objective *string    `db:"objective"`
	Blocked   *string    `db:"blocked"`
	Done      bool       `db:"done"`
	Stage     *string    `db:"stage"`
	UserID    int64      `db:"user_id"`
	ClientID  int64      `db:"client_id"`
	AuditFields
}

// TaskView is a task row left-joined with its client and assignee.
type TaskView struct {
	Task
	ClientName *string `db:"client_name"`
	ClientTip  *string `db:"client_tip"`
	UserName   *string `db:"user_name"`
	UserEmail  *string `db:"user_email"`
}
