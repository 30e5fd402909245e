package model

import (
	"time"
)

// TaskStatus represents the status of a background task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusRunning    TaskStatus = "running"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusCancelling TaskStatus = "cancelling"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskType represents the type of task being executed
type TaskType string

const (
	TaskTypeRecomputeCandidate TaskType = "recompute_candidate"
	TaskTypeRecomputeJob       TaskType = "recompute_job"
	TaskTypeNotificationSweep  TaskType = "notification_sweep"
)

// Task represents a long-running background operation, such as the
// fire-and-forget rescoring triggered by a profile update.
type Task struct {
	ID          string            `json:"id"`
	Type        TaskType          `json:"type"`
	Status      TaskStatus        `json:"status"`
	EntityID    string            `json:"entity_id"` // candidate or job the task is about
	Progress    *TaskProgress     `json:"progress,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// TaskProgress tracks the progress of a task
type TaskProgress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (tp *TaskProgress) GetProgressPercentage() float64 {
	if tp.Total == 0 {
		return 0
	}
	return float64(tp.Current) / float64(tp.Total) * 100
}
