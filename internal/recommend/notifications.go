package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

// NotifyJobPosted scores all recommendable candidates against a freshly
// posted job and emits a job_posted event for every match clearing the
// configured threshold. Pairs already matched inside the recency window are
// suppressed.
func (s *Service) NotifyJobPosted(ctx context.Context, jobID string) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	threshold := s.settings.Notifications.JobPostedThreshold
	recommendations, err := s.CandidateRecommendations(ctx, jobID, services.RecommendationOptions{
		Limit:    s.settings.Rankers.CandidateMaxLimit,
		MinScore: &threshold,
	})
	if err != nil {
		return 0, fmt.Errorf("scoring candidates for job notifications: %w", err)
	}

	sent := 0
	for _, rec := range recommendations {
		if s.emitEvent(ctx, model.MatchEventJobPosted, rec.Candidate.CandidateID, jobID, rec.Score) {
			sent++
		}
	}
	return sent, nil
}

// NotifyProfileUpdate rescores a candidate against all active jobs after a
// profile change and emits a profile_update event for every match clearing
// the configured threshold. Recomputation is advisory: callers fire and
// forget, typically through the task manager.
func (s *Service) NotifyProfileUpdate(ctx context.Context, candidateID string) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	threshold := s.settings.Notifications.ProfileUpdateThreshold
	recommendations, err := s.JobRecommendations(ctx, candidateID, services.RecommendationOptions{
		Limit:    s.settings.Rankers.JobMaxLimit,
		MinScore: &threshold,
	})
	if err != nil {
		return 0, fmt.Errorf("scoring jobs for profile notifications: %w", err)
	}

	sent := 0
	for _, rec := range recommendations {
		if s.emitEvent(ctx, model.MatchEventProfileUpdate, candidateID, rec.Job.JobID, rec.Score) {
			sent++
		}
	}
	return sent, nil
}

// emitEvent sends one match event through the notifier, deduplicated via
// the recency store when one is configured. Notification failures are
// logged, never propagated: delivery is best-effort.
func (s *Service) emitEvent(ctx context.Context, eventType model.MatchEventType, candidateID, jobID string, score model.MatchScore) bool {
	if s.recency != nil {
		seen, err := s.recency.RecentlyMatched(ctx, candidateID, jobID)
		if err != nil {
			s.logger.Warn("recency lookup failed, sending anyway",
				zap.String("candidate_id", candidateID),
				zap.String("job_id", jobID),
				zap.Error(err))
		} else if seen {
			return false
		}
	}

	event := model.MatchEvent{
		EventID:     uuid.New().String(),
		Type:        eventType,
		CandidateID: candidateID,
		JobID:       jobID,
		Score:       score,
		OccurredAt:  s.now(),
	}

	if err := s.notifier.NotifyMatch(ctx, event); err != nil {
		s.logger.Warn("match notification failed",
			zap.String("candidate_id", candidateID),
			zap.String("job_id", jobID),
			zap.Error(err))
		return false
	}

	if s.recency != nil {
		if err := s.recency.MarkMatched(ctx, candidateID, jobID, s.settings.RecencyWindow()); err != nil {
			s.logger.Warn("failed to record recent match",
				zap.String("candidate_id", candidateID),
				zap.String("job_id", jobID),
				zap.Error(err))
		}
	}
	return true
}

// LogNotifier is the default services.Notifier: it records the event in the
// log and stops there. Real delivery (email, webhooks) lives outside this
// engine.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// NotifyMatch implements services.Notifier.
func (n *LogNotifier) NotifyMatch(_ context.Context, event model.MatchEvent) error {
	n.logger.Info("high-quality match",
		zap.String("event_id", event.EventID),
		zap.String("event_type", string(event.Type)),
		zap.String("candidate_id", event.CandidateID),
		zap.String("job_id", event.JobID),
		zap.Float64("overall_score", event.Score.OverallScore),
		zap.Float64("confidence", event.Score.ConfidenceLevel),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}

// SetClock overrides the service clock. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
