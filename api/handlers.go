// Package api exposes the matching engine over HTTP using gin.
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/talentmatch/go-match-engine/internal/errors"
	"github.com/talentmatch/go-match-engine/internal/recommend"
	"github.com/talentmatch/go-match-engine/internal/tasks"
	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

// API holds dependencies for the HTTP handlers.
type API struct {
	service   *recommend.Service
	scorer    services.MatchScorer
	snapshots services.SnapshotProvider
	manager   *tasks.Manager
	logger    *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(service *recommend.Service, scorer services.MatchScorer, snapshots services.SnapshotProvider, manager *tasks.Manager, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		service:   service,
		scorer:    scorer,
		snapshots: snapshots,
		manager:   manager,
		logger:    logger,
	}
}

// SetupRoutes defines all the API routes for the matching engine.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Candidate-side routes
	candidateRoutes := router.Group("/candidates")
	{
		candidateRoutes.GET("/:candidateId/recommendations", apiHandler.GetJobRecommendationsHandler) // Rank jobs for a candidate
		candidateRoutes.POST("/:candidateId/recompute", apiHandler.RecomputeCandidateHandler)         // Async rescoring task
	}

	// Company-side routes
	router.GET("/jobs/:jobId/candidates", apiHandler.GetCandidateRecommendationsHandler)

	// Direct pair scoring
	router.POST("/match", apiHandler.MatchHandler)

	// Task management routes
	taskRoutes := router.Group("/tasks")
	{
		taskRoutes.GET("/metrics", apiHandler.GetTaskMetricsHandler) // Get task performance metrics
		taskRoutes.GET("/:taskId", apiHandler.GetTaskHandler)        // Get task status by ID
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-match-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetJobRecommendationsHandler ranks active jobs for one candidate.
// Query params: limit (capped), min_score (in [0,1]).
func (api *API) GetJobRecommendationsHandler(c *gin.Context) {
	candidateID := c.Param("candidateId")

	opts, validation := parseRecommendationOptions(c)
	if !validation.Valid {
		SendValidationError(c, validation)
		return
	}

	if _, err := api.snapshots.GetCandidate(c.Request.Context(), candidateID); err != nil {
		if stderrors.Is(err, apperrors.ErrCandidateNotFound) {
			SendCandidateNotFoundError(c, candidateID)
			return
		}
		SendInternalError(c, "Failed to load candidate: "+err.Error())
		return
	}

	recommendations, err := api.service.JobRecommendations(c.Request.Context(), candidateID, opts)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeScoringFailed,
			"Failed to compute recommendations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidate_id":    candidateID,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// GetCandidateRecommendationsHandler ranks visible candidates for one job.
func (api *API) GetCandidateRecommendationsHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	opts, validation := parseRecommendationOptions(c)
	if !validation.Valid {
		SendValidationError(c, validation)
		return
	}

	if _, err := api.snapshots.GetJob(c.Request.Context(), jobID); err != nil {
		if stderrors.Is(err, apperrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "Failed to load job: "+err.Error())
		return
	}

	recommendations, err := api.service.CandidateRecommendations(c.Request.Context(), jobID, opts)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeScoringFailed,
			"Failed to compute recommendations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":          jobID,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// MatchRequest identifies the pair to score.
type MatchRequest struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	JobID       string `json:"job_id" binding:"required"`
}

// MatchHandler scores a single (candidate, job) pair on demand.
// Request Body: MatchRequest
func (api *API) MatchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	candidate, err := api.snapshots.GetCandidate(ctx, req.CandidateID)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrCandidateNotFound) {
			SendCandidateNotFoundError(c, req.CandidateID)
			return
		}
		SendInternalError(c, "Failed to load candidate: "+err.Error())
		return
	}

	job, err := api.snapshots.GetJob(ctx, req.JobID)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrJobNotFound) {
			SendJobNotFoundError(c, req.JobID)
			return
		}
		SendInternalError(c, "Failed to load job: "+err.Error())
		return
	}

	score, err := api.scorer.Score(ctx, candidate, job)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeScoringFailed,
			"Failed to score pair: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, score)
}

// RecomputeCandidateHandler starts an asynchronous rescoring of one
// candidate against all active jobs, emitting profile_update notifications
// for strong matches.
func (api *API) RecomputeCandidateHandler(c *gin.Context) {
	candidateID := c.Param("candidateId")

	if _, err := api.snapshots.GetCandidate(c.Request.Context(), candidateID); err != nil {
		if stderrors.Is(err, apperrors.ErrCandidateNotFound) {
			SendCandidateNotFoundError(c, candidateID)
			return
		}
		SendInternalError(c, "Failed to load candidate: "+err.Error())
		return
	}

	taskID := api.manager.CreateTask(model.TaskTypeRecomputeCandidate, candidateID, map[string]string{
		"trigger": "api",
	})

	err := api.manager.ExecuteTask(taskID, func(ctx context.Context, task *model.Task) error {
		api.manager.UpdateTaskProgress(taskID, 0, 1, "Rescoring candidate against active jobs")
		sent, err := api.service.NotifyProfileUpdate(ctx, candidateID)
		if err != nil {
			return err
		}
		api.manager.UpdateTaskProgress(taskID, 1, 1, fmt.Sprintf("Emitted %d notification(s)", sent))
		return nil
	})
	if err != nil {
		SendInternalError(c, "Failed to start recompute task: "+err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":       "accepted",
		"message":      "Rescoring started for candidate '" + candidateID + "'",
		"task_id":      taskID,
		"candidate_id": candidateID,
	})
}

// GetTaskHandler handles requests to get task status by ID
func (api *API) GetTaskHandler(c *gin.Context) {
	taskID := c.Param("taskId")

	task, err := api.manager.GetTask(taskID)
	if err != nil {
		SendTaskNotFoundError(c, taskID)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTaskMetricsHandler handles requests to get task performance metrics
func (api *API) GetTaskMetricsHandler(c *gin.Context) {
	metrics := api.manager.GetMetrics()

	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     api.manager.GetSuccessRate(),
		"current_workload": api.manager.GetCurrentWorkload(),
	})
}
