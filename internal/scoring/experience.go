package scoring

import (
	"math"

	"github.com/talentmatch/go-match-engine/model"
)

// Experience penalties are asymmetric: underqualification is judged riskier
// to an employer than being "too senior", so it is penalized more steeply
// per level. Floors keep the score above zero at large gaps, preserving
// ranking signal.
const (
	overqualifiedPenaltyPerLevel  = 0.15
	underqualifiedPenaltyPerLevel = 0.25
	overqualifiedFloor            = 0.3
	underqualifiedFloor           = 0.1
)

// ExperienceMatchScore scores the distance between the candidate's and the
// job's seniority on the ordinal entry..executive scale. Exact match is 1.0.
func ExperienceMatchScore(candidateLevel, requiredLevel model.ExperienceLevel) float64 {
	diff := candidateLevel.Rank() - requiredLevel.Rank()
	if diff == 0 {
		return 1.0
	}
	if diff > 0 {
		return math.Max(overqualifiedFloor, 1.0-overqualifiedPenaltyPerLevel*float64(diff))
	}
	return math.Max(underqualifiedFloor, 1.0-underqualifiedPenaltyPerLevel*float64(-diff))
}

// Underqualified reports whether the candidate sits below the job's
// required level. Used to decide whether an experience suggestion is
// actionable.
func Underqualified(candidateLevel, requiredLevel model.ExperienceLevel) bool {
	return candidateLevel.Rank() < requiredLevel.Rank()
}
