// Package tasks runs and tracks background operations, such as the
// fire-and-forget rescoring triggered by a candidate profile update.
// "Task" rather than "job": a job is a posting in this domain.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/internal/errors"
	"github.com/talentmatch/go-match-engine/model"
)

// Manager handles background task execution and tracking
type Manager struct {
	mu       sync.RWMutex
	tasks    map[string]*model.Task
	workers  chan struct{} // Limits concurrent tasks
	stopChan chan struct{}
	wg       sync.WaitGroup
	metrics  *TaskMetrics
	logger   *zap.Logger
}

// NewManager creates a new task manager with the specified worker count
func NewManager(maxWorkers int, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		tasks:    make(map[string]*model.Task),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewTaskMetrics(),
		logger:   logger,
	}
}

// Start begins the task manager and starts background cleanup
func (m *Manager) Start() {
	m.logger.Info("task manager started", zap.Int("max_workers", cap(m.workers)))
	go m.cleanupRoutine()
}

// Stop gracefully shuts down the task manager
func (m *Manager) Stop() {
	close(m.stopChan)
	m.wg.Wait()
	m.logger.Info("task manager stopped")
}

// CreateTask creates a new task and returns its ID
func (m *Manager) CreateTask(taskType model.TaskType, entityID string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &model.Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Status:    model.TaskStatusPending,
		EntityID:  entityID,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.tasks[task.ID] = task
	m.metrics.RecordTaskCreated(taskType)
	m.logger.Info("created task",
		zap.String("task_id", task.ID),
		zap.String("type", string(task.Type)),
		zap.String("entity_id", task.EntityID))
	return task.ID
}

// GetTask retrieves a task by ID
func (m *Manager) GetTask(taskID string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return nil, errors.NewTaskNotFoundError(taskID)
	}

	// Return a copy to avoid race conditions
	taskCopy := *task
	if task.Progress != nil {
		progressCopy := *task.Progress
		taskCopy.Progress = &progressCopy
	}
	return &taskCopy, nil
}

// ListTasks returns all tasks for a specific entity, optionally filtered by status
func (m *Manager) ListTasks(entityID string, status *model.TaskStatus) []*model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Task
	for _, task := range m.tasks {
		if task.EntityID == entityID {
			if status == nil || task.Status == *status {
				taskCopy := *task
				if task.Progress != nil {
					progressCopy := *task.Progress
					taskCopy.Progress = &progressCopy
				}
				result = append(result, &taskCopy)
			}
		}
	}
	return result
}

// ExecuteTask runs a task function in a goroutine with proper tracking
func (m *Manager) ExecuteTask(taskID string, taskFunc func(ctx context.Context, task *model.Task) error) error {
	m.mu.Lock()
	task, exists := m.tasks[taskID]
	if !exists {
		m.mu.Unlock()
		return errors.NewTaskNotFoundError(taskID)
	}

	if task.Status != model.TaskStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("task with ID '%s' is not in pending status (current: %s)", taskID, task.Status)
	}

	oldStatus := task.Status
	task.Status = model.TaskStatusRunning
	now := time.Now()
	task.StartedAt = &now
	m.metrics.RecordTaskStatusChange(oldStatus, task.Status)
	m.mu.Unlock()

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-m.stopChan:
		m.updateTaskStatus(taskID, model.TaskStatusCancelled, "task manager shutting down")
		return fmt.Errorf("task manager is shutting down")
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.workers // Release worker slot
			m.wg.Done()
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		startTime := time.Now()
		err := taskFunc(ctx, task)
		executionTime := time.Since(startTime)

		if err != nil {
			m.updateTaskStatus(taskID, model.TaskStatusFailed, err.Error())
			m.metrics.RecordTaskFailed(task.Type)
			m.logger.Warn("task failed",
				zap.String("task_id", taskID),
				zap.Duration("took", executionTime),
				zap.Error(err))
		} else {
			m.updateTaskStatus(taskID, model.TaskStatusCompleted, "")
			m.metrics.RecordTaskCompleted(task.Type, executionTime)
			m.logger.Info("task completed",
				zap.String("task_id", taskID),
				zap.Duration("took", executionTime))
		}
	}()

	return nil
}

// UpdateTaskProgress updates the progress of a running task
func (m *Manager) UpdateTaskProgress(taskID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return
	}

	if task.Progress == nil {
		task.Progress = &model.TaskProgress{}
	}

	task.Progress.Current = current
	task.Progress.Total = total
	task.Progress.Message = message
}

// updateTaskStatus updates the status of a task (internal method)
func (m *Manager) updateTaskStatus(taskID string, status model.TaskStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return
	}

	oldStatus := task.Status
	task.Status = status
	if errorMsg != "" {
		task.Error = errorMsg
	}

	if status == model.TaskStatusCompleted || status == model.TaskStatusFailed || status == model.TaskStatusCancelled {
		now := time.Now()
		task.CompletedAt = &now
	}

	m.metrics.RecordTaskStatusChange(oldStatus, status)
}

// cleanupRoutine runs periodic task cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Clean up completed tasks older than 24 hours
			m.CleanupOldTasks(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldTasks removes completed tasks older than the specified duration
func (m *Manager) CleanupOldTasks(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for taskID, task := range m.tasks {
		if task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			delete(m.tasks, taskID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Info("cleaned up old tasks", zap.Int("count", cleaned))
	}
}

// GetMetrics returns current task performance metrics
func (m *Manager) GetMetrics() TaskMetricsData {
	return m.metrics.GetMetrics()
}

// GetSuccessRate returns the task success rate (0.0 to 1.0)
func (m *Manager) GetSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running tasks
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
