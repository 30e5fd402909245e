package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/recommend"
	"github.com/talentmatch/go-match-engine/internal/scoring"
	"github.com/talentmatch/go-match-engine/internal/store"
	"github.com/talentmatch/go-match-engine/internal/tasks"
	"github.com/talentmatch/go-match-engine/model"
)

func setupTestAPI(t *testing.T) (*gin.Engine, *store.MemoryStore, *tasks.Manager) {
	t.Helper()

	st := store.NewMemoryStore()
	settings := config.Default()

	engine, err := scoring.NewEngine(settings, st, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build scoring engine: %v", err)
	}

	service, err := recommend.NewService(settings, st, st, engine, st, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build recommendation service: %v", err)
	}

	manager := tasks.NewManager(2, zap.NewNop())
	manager.Start()
	t.Cleanup(manager.Stop)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewAPI(service, engine, st, manager, zap.NewNop()))
	return router, st, manager
}

func seedPair(st *store.MemoryStore) {
	st.PutCandidate(model.CandidateSnapshot{
		CandidateID:     "cand-1",
		Skills:          []string{"go", "postgres", "kubernetes"},
		ExperienceLevel: model.ExperienceSenior,
		ExperienceYears: 7,
		Location:        "Berlin",
		SalaryMin:       80000,
		SalaryMax:       110000,
		Bio:             "Backend engineer building Go services on Kubernetes",
		CurrentTitle:    "Senior Backend Engineer",
		WorkHistoryText: "Designed Go microservices backed by Postgres",
		Visibility:      model.VisibilityPublic,
		UpdatedAt:       time.Now(),
	})
	st.PutJob(model.JobSnapshot{
		JobID:           "job-1",
		CompanyID:       "acme",
		RequiredSkills:  []string{"go", "postgres", "kubernetes"},
		ExperienceLevel: model.ExperienceSenior,
		Location:        "Berlin",
		RemoteType:      model.RemoteTypeRemote,
		SalaryMin:       85000,
		SalaryMax:       115000,
		Title:           "Senior Backend Engineer",
		Description:     "Go services with Postgres on Kubernetes",
		Requirements:    "Go, Postgres, Kubernetes",
		Status:          model.JobStatusActive,
		PostedAt:        time.Now(),
	})
}

func TestHealthCheckHandler(t *testing.T) {
	router, _, _ := setupTestAPI(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestGetJobRecommendationsHandler(t *testing.T) {
	router, st, _ := setupTestAPI(t)
	seedPair(st)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{
			name:           "known candidate",
			url:            "/candidates/cand-1/recommendations",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown candidate",
			url:            "/candidates/nobody/recommendations",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid limit",
			url:            "/candidates/cand-1/recommendations?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "min_score out of range",
			url:            "/candidates/cand-1/recommendations?min_score=1.5",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	t.Run("recommendation payload", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/candidates/cand-1/recommendations", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var response struct {
			CandidateID     string                    `json:"candidate_id"`
			Recommendations []model.JobRecommendation `json:"recommendations"`
			Count           int                       `json:"count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if response.Count != 1 {
			t.Fatalf("Expected 1 recommendation, got %d", response.Count)
		}
		if response.Recommendations[0].Job.JobID != "job-1" {
			t.Errorf("Expected job-1, got %s", response.Recommendations[0].Job.JobID)
		}
		if response.Recommendations[0].Score.OverallScore <= 0 {
			t.Errorf("Expected positive overall score, got %f", response.Recommendations[0].Score.OverallScore)
		}
	})
}

func TestGetCandidateRecommendationsHandler(t *testing.T) {
	router, st, _ := setupTestAPI(t)
	seedPair(st)

	t.Run("known job", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/jobs/job-1/candidates", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var response struct {
			JobID           string                          `json:"job_id"`
			Recommendations []model.CandidateRecommendation `json:"recommendations"`
			Count           int                             `json:"count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if response.Count != 1 {
			t.Fatalf("Expected 1 recommendation, got %d", response.Count)
		}
		if response.Recommendations[0].Candidate.CandidateID != "cand-1" {
			t.Errorf("Expected cand-1, got %s", response.Recommendations[0].Candidate.CandidateID)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/jobs/ghost/candidates", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestMatchHandler(t *testing.T) {
	router, st, _ := setupTestAPI(t)
	seedPair(st)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid pair",
			requestBody:    MatchRequest{CandidateID: "cand-1", JobID: "job-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown candidate",
			requestBody:    MatchRequest{CandidateID: "nobody", JobID: "job-1"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown job",
			requestBody:    MatchRequest{CandidateID: "cand-1", JobID: "ghost"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing fields",
			requestBody:    map[string]string{"candidate_id": "cand-1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest("POST", "/match", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	t.Run("score payload", func(t *testing.T) {
		body, _ := json.Marshal(MatchRequest{CandidateID: "cand-1", JobID: "job-1"})
		req, _ := http.NewRequest("POST", "/match", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var score model.MatchScore
		if err := json.Unmarshal(w.Body.Bytes(), &score); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if score.OverallScore <= 0 || score.OverallScore > 1 {
			t.Errorf("Expected overall score in (0, 1], got %f", score.OverallScore)
		}
		if score.SkillMatchScore != 1.0 {
			t.Errorf("Expected perfect skill match, got %f", score.SkillMatchScore)
		}
	})
}

func TestRecomputeCandidateHandler(t *testing.T) {
	router, st, manager := setupTestAPI(t)
	seedPair(st)

	req, _ := http.NewRequest("POST", "/candidates/cand-1/recompute", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	taskID, ok := response["task_id"].(string)
	if !ok || taskID == "" {
		t.Fatalf("Expected non-empty task_id, got %v", response["task_id"])
	}

	// Wait for the background task to finish
	time.Sleep(50 * time.Millisecond)

	task, err := manager.GetTask(taskID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if task.Status != model.TaskStatusCompleted {
		t.Errorf("Expected task status %s, got %s", model.TaskStatusCompleted, task.Status)
	}

	t.Run("unknown candidate", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/candidates/nobody/recompute", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestGetTaskHandler(t *testing.T) {
	router, _, manager := setupTestAPI(t)

	taskID := manager.CreateTask(model.TaskTypeRecomputeCandidate, "cand-1", nil)

	req, _ := http.NewRequest("GET", "/tasks/"+taskID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var task model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if task.ID != taskID {
		t.Errorf("Expected task ID %s, got %s", taskID, task.ID)
	}

	t.Run("unknown task", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/tasks/missing", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestGetTaskMetricsHandler(t *testing.T) {
	router, _, manager := setupTestAPI(t)

	manager.CreateTask(model.TaskTypeRecomputeCandidate, "cand-1", nil)

	req, _ := http.NewRequest("GET", "/tasks/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		Metrics         tasks.TaskMetricsData `json:"metrics"`
		SuccessRate     float64               `json:"success_rate"`
		CurrentWorkload int64                 `json:"current_workload"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Metrics.TasksCreated != 1 {
		t.Errorf("Expected 1 task created, got %d", response.Metrics.TasksCreated)
	}
	if response.CurrentWorkload != 1 {
		t.Errorf("Expected workload 1, got %d", response.CurrentWorkload)
	}
}
