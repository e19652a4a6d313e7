package model

import (
	"context"
	"strings"
	"time"
)

type Task struct {
	ID          string
	EventID     string
	Title       string
	Description string
	AssignedTo  string
	Phone       string
	Deadline    time.Time
	Status      TaskStatus
	Priority    TaskPriority
	CreatedAt   time.Time
}

func NewTask(eventID string, title string, assignedTo string) *Task {
	return &Task{
		EventID:    eventID,
		Title:      title,
		AssignedTo: assignedTo,
		Status:     TaskStatusPending,
		Priority:   TaskPriorityMedium,
	}
}

// EffectiveStatus is the status shown to the user: a stored "done" always
// wins, anything else turns into "overdue" once the deadline has passed.
// Stored status is never mutated by the passage of time.
func (t Task) EffectiveStatus(now time.Time) TaskStatus {
	if t.Status == TaskStatusDone {
		return TaskStatusDone
	}
	if t.Deadline.Before(now) {
		return TaskStatusOverdue
	}
	return TaskStatusPending
}

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusOverdue TaskStatus = "overdue"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ParseTaskPriority normalizes a free-form priority string. The match is
// case-insensitive; the second return reports whether the input named a
// known priority.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToLower(s)) {
	case TaskPriorityLow:
		return TaskPriorityLow, true
	case TaskPriorityMedium:
		return TaskPriorityMedium, true
	case TaskPriorityHigh:
		return TaskPriorityHigh, true
	}
	return "", false
}

// ImportedTask is the shape produced by the CSV importer: a task before it
// is attached to an event and assigned identity.
type ImportedTask struct {
	Title       string
	Description string
	AssignedTo  string
	Phone       string
	Deadline    time.Time
	Priority    TaskPriority
}

type TaskFilter struct {
	EventID  string
	Status   TaskStatus
	Priority TaskPriority
	Search   string
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	RemoveTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*Task, error)
	FilterTasks(ctx context.Context, filter TaskFilter) ([]Task, error)
	ToggleTaskDone(ctx context.Context, id string) (*Task, error)
	BulkImportTasks(ctx context.Context, eventID string, imported []ImportedTask) ([]Task, error)
	DashboardStats(ctx context.Context, now time.Time) (DashboardStats, error)
}
