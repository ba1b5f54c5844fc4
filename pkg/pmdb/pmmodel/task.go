package pmmodel

import (
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task is scoped to a project and carries no ACL of its own; authorization
// always resolves through the project.
type Task struct {
	ID          int           `json:"id"`
	UUID        string        `json:"uuid"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ProjectID   int           `json:"project_id"`
	AssigneeID  *int          `json:"assignee_id"`
	ReporterID  int           `json:"reporter_id"`
	Status      TaskStatus    `json:"status"`
	Priority    TaskPriority  `json:"priority"`
	DueDate     *time.Time    `json:"due_date"`
	Labels      string        `json:"-"`
	Comments    []TaskComment `json:"comments"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// GetLabels decodes the JSON-encoded labels column.
func (t Task) GetLabels() ([]string, error) {
	var labels []string
	err := json.Unmarshal([]byte(t.Labels), &labels)
	return labels, err
}

// SetLabels encodes labels into the JSON labels column.
func (t *Task) SetLabels(labels []string) error {
	b, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	t.Labels = string(b)
	return nil
}

// IsAssignedTo reports whether the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID int) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// TaskComment carries a stable UUID generated at append time so removal does
// not depend on text equality.
type TaskComment struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	TaskID    int       `json:"task_id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
