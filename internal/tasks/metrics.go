package tasks

import (
	"sync"
	"time"

	"github.com/talentmatch/go-match-engine/model"
)

// TaskMetricsData represents task metrics data without mutex (safe for copying)
type TaskMetricsData struct {
	TasksCreated         int64                      `json:"tasks_created"`
	TasksCompleted       int64                      `json:"tasks_completed"`
	TasksFailed          int64                      `json:"tasks_failed"`
	TotalExecutionTime   time.Duration              `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration              `json:"average_execution_time_ns"`
	TasksByType          map[model.TaskType]int64   `json:"tasks_by_type"`
	TasksByStatus        map[model.TaskStatus]int64 `json:"tasks_by_status"`
	LastUpdated          time.Time                  `json:"last_updated"`
}

// TaskMetrics tracks performance metrics for background task operations
type TaskMetrics struct {
	mu                   sync.RWMutex
	TasksCreated         int64
	TasksCompleted       int64
	TasksFailed          int64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	TasksByType          map[model.TaskType]int64
	TasksByStatus        map[model.TaskStatus]int64
	ExecutionTimesByType map[model.TaskType][]time.Duration
	LastUpdated          time.Time
}

// NewTaskMetrics creates a new metrics collector
func NewTaskMetrics() *TaskMetrics {
	return &TaskMetrics{
		TasksByType:          make(map[model.TaskType]int64),
		TasksByStatus:        make(map[model.TaskStatus]int64),
		ExecutionTimesByType: make(map[model.TaskType][]time.Duration),
		LastUpdated:          time.Now(),
	}
}

// RecordTaskCreated increments task creation counters
func (m *TaskMetrics) RecordTaskCreated(taskType model.TaskType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TasksCreated++
	m.TasksByType[taskType]++
	m.TasksByStatus[model.TaskStatusPending]++
	m.LastUpdated = time.Now()
}

// RecordTaskStatusChange updates status counters
func (m *TaskMetrics) RecordTaskStatusChange(oldStatus, newStatus model.TaskStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" {
		m.TasksByStatus[oldStatus]--
		if m.TasksByStatus[oldStatus] < 0 {
			m.TasksByStatus[oldStatus] = 0
		}
	}
	m.TasksByStatus[newStatus]++
	m.LastUpdated = time.Now()
}

// RecordTaskCompleted records successful task completion
func (m *TaskMetrics) RecordTaskCompleted(taskType model.TaskType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TasksCompleted++
	m.TotalExecutionTime += executionTime

	if m.TasksCompleted > 0 {
		m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.TasksCompleted)
	}

	m.ExecutionTimesByType[taskType] = append(m.ExecutionTimesByType[taskType], executionTime)

	// Keep only last 100 execution times per type to prevent memory growth
	if len(m.ExecutionTimesByType[taskType]) > 100 {
		m.ExecutionTimesByType[taskType] = m.ExecutionTimesByType[taskType][1:]
	}

	m.LastUpdated = time.Now()
}

// RecordTaskFailed records task failure
func (m *TaskMetrics) RecordTaskFailed(taskType model.TaskType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TasksFailed++
	m.LastUpdated = time.Now()
}

// GetMetrics returns a copy of current metrics without mutex (safe for copying)
func (m *TaskMetrics) GetMetrics() TaskMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasksByType := make(map[model.TaskType]int64)
	for k, v := range m.TasksByType {
		tasksByType[k] = v
	}

	tasksByStatus := make(map[model.TaskStatus]int64)
	for k, v := range m.TasksByStatus {
		tasksByStatus[k] = v
	}

	return TaskMetricsData{
		TasksCreated:         m.TasksCreated,
		TasksCompleted:       m.TasksCompleted,
		TasksFailed:          m.TasksFailed,
		TotalExecutionTime:   m.TotalExecutionTime,
		AverageExecutionTime: m.AverageExecutionTime,
		TasksByType:          tasksByType,
		TasksByStatus:        tasksByStatus,
		LastUpdated:          m.LastUpdated,
	}
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *TaskMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totalCompleted := m.TasksCompleted + m.TasksFailed
	if totalCompleted == 0 {
		return 1.0 // No tasks yet, assume 100% success
	}
	return float64(m.TasksCompleted) / float64(totalCompleted)
}

// GetCurrentWorkload returns the number of currently active tasks
func (m *TaskMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.TasksByStatus[model.TaskStatusPending] + m.TasksByStatus[model.TaskStatusRunning]
}
