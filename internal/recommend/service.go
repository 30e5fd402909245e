// Package recommend ranks jobs for candidates and candidates for jobs using
// the hybrid scorer, and triggers notifications for high-quality matches.
package recommend

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/errors"
	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

// Service implements services.Recommender. Failure semantics follow the
// availability-first rule: a missing candidate or job yields a logged empty
// result, a failing pair is logged and skipped, and only provider-level
// failures propagate, since no partial result is meaningful without input.
type Service struct {
	settings  *config.Settings
	snapshots services.SnapshotProvider
	history   services.ApplicationHistoryProvider
	scorer    services.MatchScorer
	recency   services.RecencyStore // may be nil: notification dedup disabled
	notifier  services.Notifier     // may be nil: notifications disabled
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a recommendation service. recency and notifier are
// optional; the other dependencies are required.
func NewService(settings *config.Settings, snapshots services.SnapshotProvider, history services.ApplicationHistoryProvider, scorer services.MatchScorer, recency services.RecencyStore, notifier services.Notifier, logger *zap.Logger) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot provider cannot be nil")
	}
	if history == nil {
		return nil, fmt.Errorf("application history provider cannot be nil")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		settings:  settings,
		snapshots: snapshots,
		history:   history,
		scorer:    scorer,
		recency:   recency,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// JobRecommendations scores all eligible active jobs for the candidate and
// returns the top entries at or above the minimum score, descending. Jobs
// the candidate applied to inside the recency window are excluded. Equal
// scores keep provider enumeration order (stable sort).
func (s *Service) JobRecommendations(ctx context.Context, candidateID string, opts services.RecommendationOptions) ([]model.JobRecommendation, error) {
	limit := clampLimit(opts.Limit, s.settings.Rankers.JobDefaultLimit, s.settings.Rankers.JobMaxLimit)
	minScore := resolveMinScore(opts.MinScore, s.settings.Rankers.JobMinScore)

	candidate, err := s.snapshots.GetCandidate(ctx, candidateID)
	if err != nil {
		if stderrors.Is(err, errors.ErrCandidateNotFound) {
			s.logger.Warn("candidate not found, returning empty recommendations",
				zap.String("candidate_id", candidateID))
			return []model.JobRecommendation{}, nil
		}
		return nil, fmt.Errorf("loading candidate snapshot: %w", err)
	}

	jobs, err := s.snapshots.ListActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active jobs: %w", err)
	}

	now := s.now()
	applied, err := s.history.AppliedJobIDs(ctx, candidateID, now.Add(-s.settings.RecencyWindow()))
	if err != nil {
		return nil, fmt.Errorf("listing recent applications: %w", err)
	}

	recommendations := make([]model.JobRecommendation, 0, limit)
	for i := range jobs {
		job := &jobs[i]
		if !job.Eligible(now) {
			continue
		}
		if _, recentlyApplied := applied[job.JobID]; recentlyApplied {
			continue
		}

		score, err := s.scorer.Score(ctx, candidate, job)
		if err != nil {
			s.logger.Warn("skipping pair after scoring failure",
				zap.String("candidate_id", candidateID),
				zap.String("job_id", job.JobID),
				zap.Error(err))
			continue
		}

		if score.OverallScore >= minScore {
			recommendations = append(recommendations, model.JobRecommendation{
				Job:           *job,
				Score:         score,
				RecommendedAt: now,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score.OverallScore > recommendations[j].Score.OverallScore
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations, nil
}

// CandidateRecommendations scores all visible candidates who have not
// already applied to the job and returns the top entries at or above the
// minimum score, descending.
func (s *Service) CandidateRecommendations(ctx context.Context, jobID string, opts services.RecommendationOptions) ([]model.CandidateRecommendation, error) {
	limit := clampLimit(opts.Limit, s.settings.Rankers.CandidateLimit, s.settings.Rankers.CandidateMaxLimit)
	minScore := resolveMinScore(opts.MinScore, s.settings.Rankers.CandidateMinScore)

	job, err := s.snapshots.GetJob(ctx, jobID)
	if err != nil {
		if stderrors.Is(err, errors.ErrJobNotFound) {
			s.logger.Warn("job not found, returning empty recommendations",
				zap.String("job_id", jobID))
			return []model.CandidateRecommendation{}, nil
		}
		return nil, fmt.Errorf("loading job snapshot: %w", err)
	}

	candidates, err := s.snapshots.ListVisibleCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}

	recommendations := make([]model.CandidateRecommendation, 0, limit)
	for i := range candidates {
		candidate := &candidates[i]

		alreadyApplied, err := s.history.HasApplied(ctx, candidate.CandidateID, jobID)
		if err != nil {
			s.logger.Warn("skipping candidate after application lookup failure",
				zap.String("candidate_id", candidate.CandidateID),
				zap.String("job_id", jobID),
				zap.Error(err))
			continue
		}
		if alreadyApplied {
			continue
		}

		score, err := s.scorer.Score(ctx, candidate, job)
		if err != nil {
			s.logger.Warn("skipping pair after scoring failure",
				zap.String("candidate_id", candidate.CandidateID),
				zap.String("job_id", jobID),
				zap.Error(err))
			continue
		}

		if score.OverallScore >= minScore {
			recommendations = append(recommendations, model.CandidateRecommendation{
				Candidate: *candidate,
				Score:     score,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score.OverallScore > recommendations[j].Score.OverallScore
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations, nil
}

// clampLimit resolves the effective result limit from the caller's request.
func clampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// resolveMinScore resolves the effective score threshold, clamped to [0, 1].
func resolveMinScore(requested *float64, def float64) float64 {
	if requested == nil {
		return def
	}
	if *requested < 0 {
		return 0
	}
	if *requested > 1 {
		return 1
	}
	return *requested
}
