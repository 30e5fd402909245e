// Package config provides configuration structures for the matching engine.
// It defines the hybrid weights, explanation thresholds, collaborative
// heuristics, and ranker defaults, plus loading from file and environment.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Weights are the fixed hybrid-combiner weights. They are design constants,
// not learned: content and collaborative dominate because they carry the
// richest signal, skill/experience are secondary filters, location/salary
// are minor tie-breakers since their scorers already default to
// neutral-ish values when data is sparse.
type Weights struct {
	Content       float64 `json:"content" mapstructure:"content"`
	Collaborative float64 `json:"collaborative" mapstructure:"collaborative"`
	Skill         float64 `json:"skill" mapstructure:"skill"`
	Experience    float64 `json:"experience" mapstructure:"experience"`
	Location      float64 `json:"location" mapstructure:"location"`
	Salary        float64 `json:"salary" mapstructure:"salary"`
}

// Thresholds control when explanations are generated: a sub-score above its
// strong threshold produces a match reason, one below its weak threshold
// produces an improvement suggestion (where actionable).
type Thresholds struct {
	StrongSkill      float64 `json:"strong_skill" mapstructure:"strong_skill"`
	StrongExperience float64 `json:"strong_experience" mapstructure:"strong_experience"`
	StrongLocation   float64 `json:"strong_location" mapstructure:"strong_location"`
	StrongSalary     float64 `json:"strong_salary" mapstructure:"strong_salary"`
	WeakSkill        float64 `json:"weak_skill" mapstructure:"weak_skill"`
	WeakExperience   float64 `json:"weak_experience" mapstructure:"weak_experience"`
}

// Collaborative holds the heuristic constants of the collaborative scorer.
// These are configurable defaults, not fixed truths: the overlap fraction
// and the two neutral defaults have no derivation beyond working well.
type Collaborative struct {
	MaxSimilarCandidates int     `json:"max_similar_candidates" mapstructure:"max_similar_candidates"`
	SkillOverlapFraction float64 `json:"skill_overlap_fraction" mapstructure:"skill_overlap_fraction"`
	NoSimilarDefault     float64 `json:"no_similar_default" mapstructure:"no_similar_default"`
	NoSuccessDefault     float64 `json:"no_success_default" mapstructure:"no_success_default"`
}

// Content holds the per-pair TF-IDF vectorizer limits.
type Content struct {
	MaxFeatures int `json:"max_features" mapstructure:"max_features"`
}

// Rankers holds recommendation defaults and caps.
type Rankers struct {
	JobMinScore         float64 `json:"job_min_score" mapstructure:"job_min_score"`
	JobDefaultLimit     int     `json:"job_default_limit" mapstructure:"job_default_limit"`
	JobMaxLimit         int     `json:"job_max_limit" mapstructure:"job_max_limit"`
	CandidateMinScore   float64 `json:"candidate_min_score" mapstructure:"candidate_min_score"`
	CandidateLimit      int     `json:"candidate_default_limit" mapstructure:"candidate_default_limit"`
	CandidateMaxLimit   int     `json:"candidate_max_limit" mapstructure:"candidate_max_limit"`
	RecencyWindowDays   int     `json:"recency_window_days" mapstructure:"recency_window_days"`
	MaxReasonSkills     int     `json:"max_reason_skills" mapstructure:"max_reason_skills"`
	MaxSuggestionSkills int     `json:"max_suggestion_skills" mapstructure:"max_suggestion_skills"`
}

// Notifications holds the high-quality thresholds per event type.
type Notifications struct {
	JobPostedThreshold     float64 `json:"job_posted_threshold" mapstructure:"job_posted_threshold"`
	ProfileUpdateThreshold float64 `json:"profile_update_threshold" mapstructure:"profile_update_threshold"`
	SweepSchedule          string  `json:"sweep_schedule" mapstructure:"sweep_schedule"` // cron spec; empty disables the sweep
}

// Settings contains all configuration options for the matching engine.
type Settings struct {
	Port          string        `json:"port" mapstructure:"port"`
	DatabaseURL   string        `json:"database_url" mapstructure:"database_url"`
	RedisURL      string        `json:"redis_url" mapstructure:"redis_url"`
	LogJSON       bool          `json:"log_json" mapstructure:"log_json"`
	Debug         bool          `json:"debug" mapstructure:"debug"`
	MaxTaskWorker int           `json:"max_task_workers" mapstructure:"max_task_workers"`
	Weights       Weights       `json:"weights" mapstructure:"weights"`
	Thresholds    Thresholds    `json:"thresholds" mapstructure:"thresholds"`
	Collaborative Collaborative `json:"collaborative" mapstructure:"collaborative"`
	Content       Content       `json:"content" mapstructure:"content"`
	Rankers       Rankers       `json:"rankers" mapstructure:"rankers"`
	Notifications Notifications `json:"notifications" mapstructure:"notifications"`
}

// Default returns the settings the engine ships with.
func Default() *Settings {
	return &Settings{
		Port:          "8080",
		MaxTaskWorker: 3,
		Weights: Weights{
			Content:       0.40,
			Collaborative: 0.30,
			Skill:         0.15,
			Experience:    0.10,
			Location:      0.03,
			Salary:        0.02,
		},
		Thresholds: Thresholds{
			StrongSkill:      0.7,
			StrongExperience: 0.8,
			StrongLocation:   0.8,
			StrongSalary:     0.8,
			WeakSkill:        0.6,
			WeakExperience:   0.5,
		},
		Collaborative: Collaborative{
			MaxSimilarCandidates: 50,
			SkillOverlapFraction: 1.0 / 3.0,
			NoSimilarDefault:     0.5,
			NoSuccessDefault:     0.4,
		},
		Content: Content{
			MaxFeatures: 1000,
		},
		Rankers: Rankers{
			JobMinScore:         0.5,
			JobDefaultLimit:     10,
			JobMaxLimit:         50,
			CandidateMinScore:   0.6,
			CandidateLimit:      20,
			CandidateMaxLimit:   100,
			RecencyWindowDays:   30,
			MaxReasonSkills:     3,
			MaxSuggestionSkills: 3,
		},
		Notifications: Notifications{
			JobPostedThreshold:     0.7,
			ProfileUpdateThreshold: 0.8,
		},
	}
}

// RecencyWindow returns the applied-recency exclusion window as a duration.
func (s *Settings) RecencyWindow() time.Duration {
	return time.Duration(s.Rankers.RecencyWindowDays) * 24 * time.Hour
}

// Load reads settings from an optional YAML file and MATCH_-prefixed
// environment variables, layered over Default().
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("MATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	settings := Default()
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(conflicts, "; "))
	}

	return settings, nil
}

// Validate checks the settings for basic consistency and returns a list of
// human-readable conflicts. An empty list means the settings are usable.
func (s *Settings) Validate() []string {
	var conflicts []string

	conflicts = append(conflicts, checkUnitInterval("weights.content", s.Weights.Content)...)
	conflicts = append(conflicts, checkUnitInterval("weights.collaborative", s.Weights.Collaborative)...)
	conflicts = append(conflicts, checkUnitInterval("weights.skill", s.Weights.Skill)...)
	conflicts = append(conflicts, checkUnitInterval("weights.experience", s.Weights.Experience)...)
	conflicts = append(conflicts, checkUnitInterval("weights.location", s.Weights.Location)...)
	conflicts = append(conflicts, checkUnitInterval("weights.salary", s.Weights.Salary)...)

	weightSum := s.Weights.Content + s.Weights.Collaborative + s.Weights.Skill +
		s.Weights.Experience + s.Weights.Location + s.Weights.Salary
	if math.Abs(weightSum-1.0) > 0.01 {
		conflicts = append(conflicts, fmt.Sprintf("hybrid weights must sum to 1.0, got %.3f", weightSum))
	}

	conflicts = append(conflicts, checkUnitInterval("thresholds.strong_skill", s.Thresholds.StrongSkill)...)
	conflicts = append(conflicts, checkUnitInterval("thresholds.strong_experience", s.Thresholds.StrongExperience)...)
	conflicts = append(conflicts, checkUnitInterval("thresholds.strong_location", s.Thresholds.StrongLocation)...)
	conflicts = append(conflicts, checkUnitInterval("thresholds.strong_salary", s.Thresholds.StrongSalary)...)
	conflicts = append(conflicts, checkUnitInterval("thresholds.weak_skill", s.Thresholds.WeakSkill)...)
	conflicts = append(conflicts, checkUnitInterval("thresholds.weak_experience", s.Thresholds.WeakExperience)...)

	if s.Collaborative.MaxSimilarCandidates <= 0 {
		conflicts = append(conflicts, "collaborative.max_similar_candidates must be positive")
	}
	if s.Collaborative.SkillOverlapFraction <= 0 || s.Collaborative.SkillOverlapFraction > 1 {
		conflicts = append(conflicts, "collaborative.skill_overlap_fraction must be in (0, 1]")
	}
	conflicts = append(conflicts, checkUnitInterval("collaborative.no_similar_default", s.Collaborative.NoSimilarDefault)...)
	conflicts = append(conflicts, checkUnitInterval("collaborative.no_success_default", s.Collaborative.NoSuccessDefault)...)

	if s.Content.MaxFeatures <= 0 {
		conflicts = append(conflicts, "content.max_features must be positive")
	}

	conflicts = append(conflicts, checkUnitInterval("rankers.job_min_score", s.Rankers.JobMinScore)...)
	conflicts = append(conflicts, checkUnitInterval("rankers.candidate_min_score", s.Rankers.CandidateMinScore)...)
	if s.Rankers.JobDefaultLimit <= 0 || s.Rankers.JobMaxLimit < s.Rankers.JobDefaultLimit {
		conflicts = append(conflicts, "rankers job limits must satisfy 0 < default <= max")
	}
	if s.Rankers.CandidateLimit <= 0 || s.Rankers.CandidateMaxLimit < s.Rankers.CandidateLimit {
		conflicts = append(conflicts, "rankers candidate limits must satisfy 0 < default <= max")
	}
	if s.Rankers.RecencyWindowDays < 0 {
		conflicts = append(conflicts, "rankers.recency_window_days cannot be negative")
	}

	conflicts = append(conflicts, checkUnitInterval("notifications.job_posted_threshold", s.Notifications.JobPostedThreshold)...)
	conflicts = append(conflicts, checkUnitInterval("notifications.profile_update_threshold", s.Notifications.ProfileUpdateThreshold)...)

	if s.MaxTaskWorker <= 0 {
		conflicts = append(conflicts, "max_task_workers must be positive")
	}

	return conflicts
}

// checkUnitInterval validates that a score-like value lies in [0, 1].
func checkUnitInterval(name string, value float64) []string {
	if value < 0 || value > 1 {
		return []string{fmt.Sprintf("%s must be in [0, 1], got %g", name, value)}
	}
	return nil
}
