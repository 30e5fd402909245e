package services

import (
	"context"
	"time"

	"github.com/talentmatch/go-match-engine/model"
)

// RecommendationOptions carries caller-supplied ranking knobs. A nil
// MinScore or a zero Limit means "use the configured default".
type RecommendationOptions struct {
	Limit    int      `json:"limit,omitempty"`
	MinScore *float64 `json:"min_score,omitempty"`
}

// SnapshotProvider returns read-only candidate and job views assembled
// from the persistence layer. Implementations must return the sentinel
// not-found errors from internal/errors when an ID does not resolve.
type SnapshotProvider interface {
	GetCandidate(ctx context.Context, candidateID string) (*model.CandidateSnapshot, error)
	GetJob(ctx context.Context, jobID string) (*model.JobSnapshot, error)

	// ListActiveJobs returns postings eligible for scoring (active, not
	// expired). Callers re-check eligibility against their own clock.
	ListActiveJobs(ctx context.Context) ([]model.JobSnapshot, error)

	// ListVisibleCandidates returns candidates with public or
	// companies_only visibility, in stable enumeration order.
	ListVisibleCandidates(ctx context.Context) ([]model.CandidateSnapshot, error)

	// RecentlyUpdatedCandidateIDs lists candidates whose profile changed
	// at or after the given instant. Used by the notification sweep.
	RecentlyUpdatedCandidateIDs(ctx context.Context, since time.Time) ([]string, error)
}

// ApplicationHistoryProvider exposes past applications and their outcomes.
// Only the collaborative scorer and the eligibility filters consume it.
type ApplicationHistoryProvider interface {
	// CandidatesAtLevel returns candidate snapshots with the given
	// experience level, excluding excludeID. Skill-overlap filtering is
	// the scorer's concern, not the provider's.
	CandidatesAtLevel(ctx context.Context, level model.ExperienceLevel, excludeID string) ([]model.CandidateSnapshot, error)

	// PeerApplicationsAtCompany returns the given candidates'
	// applications to postings of one company, joined with job snapshots.
	PeerApplicationsAtCompany(ctx context.Context, candidateIDs []string, companyID string) ([]model.PeerApplication, error)

	// AppliedJobIDs returns the set of job IDs the candidate applied to
	// at or after the given instant.
	AppliedJobIDs(ctx context.Context, candidateID string, since time.Time) (map[string]struct{}, error)

	// HasApplied reports whether the candidate ever applied to the job.
	HasApplied(ctx context.Context, candidateID, jobID string) (bool, error)
}

// RecencyStore tracks which (candidate, job) pairs were recently matched,
// so repeat notifications inside the recency window are suppressed.
type RecencyStore interface {
	MarkMatched(ctx context.Context, candidateID, jobID string, ttl time.Duration) error
	RecentlyMatched(ctx context.Context, candidateID, jobID string) (bool, error)
}

// Notifier receives high-quality match events. Delivery (email, webhook)
// is an external concern.
type Notifier interface {
	NotifyMatch(ctx context.Context, event model.MatchEvent) error
}

// MatchScorer computes the hybrid match score for one pair of snapshots.
type MatchScorer interface {
	Score(ctx context.Context, candidate *model.CandidateSnapshot, job *model.JobSnapshot) (model.MatchScore, error)
}

// Recommender ranks jobs for a candidate and candidates for a job.
type Recommender interface {
	JobRecommendations(ctx context.Context, candidateID string, opts RecommendationOptions) ([]model.JobRecommendation, error)
	CandidateRecommendations(ctx context.Context, jobID string, opts RecommendationOptions) ([]model.CandidateRecommendation, error)
}

// TaskManager defines read operations for background tasks.
type TaskManager interface {
	GetTask(taskID string) (*model.Task, error)
	ListTasks(entityID string, status *model.TaskStatus) []*model.Task
}
