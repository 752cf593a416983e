package models

import "time"

// TaskStatus represents the lifecycle state of a task. Any transition between
// the three states is allowed.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// DefaultTaskPriority is applied when a create request carries no priority.
const DefaultTaskPriority = 2

// Task is a single to-do item owned by exactly one user. CategoryID, when
// set, must reference a category owned by the same user; the reference is not
// enforced with a foreign key so that deleting a category leaves tasks
// dangling, which serialization degrades to a null category.
type Task struct {
	Base
	UserID      uint       `gorm:"index;not null" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Priority    int        `gorm:"not null;default:2" json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	CategoryID  *uint      `json:"-"`
}
