package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/textsim"
	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

// Engine computes hybrid match scores. It is stateless per call: each Score
// invocation reads two immutable snapshots, so batches may score pairs in
// parallel without coordination.
type Engine struct {
	settings   *config.Settings
	history    services.ApplicationHistoryProvider
	vectorizer *textsim.Vectorizer
	logger     *zap.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(settings *config.Settings, history services.ApplicationHistoryProvider, logger *zap.Logger) (*Engine, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if history == nil {
		return nil, fmt.Errorf("application history provider cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		settings:   settings,
		history:    history,
		vectorizer: textsim.NewVectorizer(settings.Content.MaxFeatures),
		logger:     logger,
	}, nil
}

// Score computes the full hybrid match for one (candidate, job) pair. Only
// the collaborative path can fail (it reads application history); every
// other sub-score is a pure function of the snapshots.
func (e *Engine) Score(ctx context.Context, candidate *model.CandidateSnapshot, job *model.JobSnapshot) (model.MatchScore, error) {
	if candidate == nil || job == nil {
		return model.MatchScore{}, fmt.Errorf("candidate and job snapshots are required")
	}

	candidateSkills := candidate.SkillSet()
	requiredSkills := job.RequiredSkillSet()

	collaborative, err := e.collaborativeScore(ctx, candidate, job)
	if err != nil {
		return model.MatchScore{}, err
	}

	score := model.MatchScore{
		JobID:       job.JobID,
		CandidateID: candidate.CandidateID,

		SkillMatchScore:      SkillMatchScore(candidateSkills, requiredSkills),
		ExperienceMatchScore: ExperienceMatchScore(candidate.ExperienceLevel, job.ExperienceLevel),
		LocationMatchScore:   LocationMatchScore(candidate, job),
		SalaryMatchScore:     SalaryMatchScore(candidate.SalaryMin, candidate.SalaryMax, job.SalaryMin, job.SalaryMax),
		CollaborativeScore:   collaborative,
		ContentBasedScore:    e.contentScore(candidate, job),
	}

	weights := e.settings.Weights
	score.OverallScore = math.Min(1.0,
		weights.Content*score.ContentBasedScore+
			weights.Collaborative*score.CollaborativeScore+
			weights.Skill*score.SkillMatchScore+
			weights.Experience*score.ExperienceMatchScore+
			weights.Location*score.LocationMatchScore+
			weights.Salary*score.SalaryMatchScore)

	score.ConfidenceLevel = confidenceLevel(candidate, job)
	score.MatchReasons = e.matchReasons(&score, candidate, job, candidateSkills, requiredSkills)
	score.ImprovementSuggestions = e.improvementSuggestions(&score, candidate, job, candidateSkills, requiredSkills)

	return score, nil
}

// confidenceLevel sums data-completeness indicators across both snapshots,
// capped at 1.0. It says how much input the scorers had to work with, not
// how statistically certain the score is.
func confidenceLevel(candidate *model.CandidateSnapshot, job *model.JobSnapshot) float64 {
	confidence := 0.0

	if len(candidate.Skills) > 0 {
		confidence += 0.3
	}
	if candidate.ExperienceYears > 0 {
		confidence += 0.2
	}
	if strings.TrimSpace(candidate.Bio) != "" {
		confidence += 0.1
	}
	if strings.TrimSpace(candidate.WorkHistoryText) != "" {
		confidence += 0.2
	}
	if len(job.RequiredSkills) > 0 {
		confidence += 0.1
	}
	if strings.TrimSpace(job.Description) != "" {
		confidence += 0.05
	}
	if strings.TrimSpace(job.Requirements) != "" {
		confidence += 0.05
	}

	return math.Min(1.0, confidence)
}

// matchReasons generates a human-readable line per sub-score that clears
// its strong threshold, in a fixed order.
func (e *Engine) matchReasons(score *model.MatchScore, candidate *model.CandidateSnapshot, job *model.JobSnapshot, candidateSkills, requiredSkills map[string]struct{}) []string {
	thresholds := e.settings.Thresholds
	reasons := make([]string, 0, 4)

	if score.SkillMatchScore > thresholds.StrongSkill {
		shared := SharedSkills(candidateSkills, requiredSkills)
		if max := e.settings.Rankers.MaxReasonSkills; len(shared) > max {
			shared = shared[:max]
		}
		if len(shared) > 0 {
			reasons = append(reasons, fmt.Sprintf("Strong skill match: %s", strings.Join(shared, ", ")))
		}
	}

	if score.ExperienceMatchScore > thresholds.StrongExperience {
		reasons = append(reasons, fmt.Sprintf("Experience level aligns with the %s role", job.ExperienceLevel))
	}

	if score.LocationMatchScore > thresholds.StrongLocation {
		if job.RemoteType == model.RemoteTypeRemote {
			reasons = append(reasons, "Remote position, no relocation needed")
		} else {
			reasons = append(reasons, "Location is compatible with this position")
		}
	}

	if score.SalaryMatchScore > thresholds.StrongSalary {
		reasons = append(reasons, "Salary expectations align with the offered range")
	}

	return reasons
}

// improvementSuggestions generates actionable advice for sub-scores below
// their weak thresholds: skill gaps and experience gaps only, since those
// are the ones a candidate can act on.
func (e *Engine) improvementSuggestions(score *model.MatchScore, candidate *model.CandidateSnapshot, job *model.JobSnapshot, candidateSkills, requiredSkills map[string]struct{}) []string {
	thresholds := e.settings.Thresholds
	suggestions := make([]string, 0, 2)

	if score.SkillMatchScore < thresholds.WeakSkill {
		missing := MissingSkills(candidateSkills, requiredSkills)
		if max := e.settings.Rankers.MaxSuggestionSkills; len(missing) > max {
			missing = missing[:max]
		}
		if len(missing) > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Consider developing these skills: %s", strings.Join(missing, ", ")))
		}
	}

	if score.ExperienceMatchScore < thresholds.WeakExperience && Underqualified(candidate.ExperienceLevel, job.ExperienceLevel) {
		suggestions = append(suggestions, fmt.Sprintf("Gaining experience toward the %s level would strengthen this match", job.ExperienceLevel))
	}

	return suggestions
}
