package model

import "time"

// MatchScore is the result of scoring one (candidate, job) pair. All scores
// are in [0.0, 1.0]. It is computed on demand and not persisted.
type MatchScore struct {
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`

	OverallScore float64 `json:"overall_score"`

	SkillMatchScore      float64 `json:"skill_match_score"`
	ExperienceMatchScore float64 `json:"experience_match_score"`
	LocationMatchScore   float64 `json:"location_match_score"`
	SalaryMatchScore     float64 `json:"salary_match_score"`
	CollaborativeScore   float64 `json:"collaborative_score"`
	ContentBasedScore    float64 `json:"content_based_score"`

	// ConfidenceLevel reflects completeness of the input data on both
	// sides. It is a data-quality indicator, not a statistical bound.
	ConfidenceLevel float64 `json:"confidence_level"`

	MatchReasons           []string `json:"match_reasons"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// JobRecommendation pairs a scored job with the match that produced it.
type JobRecommendation struct {
	Job           JobSnapshot `json:"job"`
	Score         MatchScore  `json:"score"`
	RecommendedAt time.Time   `json:"recommended_at"`
}

// CandidateRecommendation pairs a scored candidate with the match that
// produced it.
type CandidateRecommendation struct {
	Candidate CandidateSnapshot `json:"candidate"`
	Score     MatchScore        `json:"score"`
}

// MatchEventType distinguishes what triggered a notification-worthy match.
type MatchEventType string

const (
	MatchEventJobPosted     MatchEventType = "job_posted"
	MatchEventProfileUpdate MatchEventType = "profile_update"
)

// MatchEvent is emitted to the notifier when a newly computed score clears
// the high-quality threshold for its event type. Delivery is out of scope.
type MatchEvent struct {
	EventID     string         `json:"event_id"`
	Type        MatchEventType `json:"type"`
	CandidateID string         `json:"candidate_id"`
	JobID       string         `json:"job_id"`
	Score       MatchScore     `json:"score"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
