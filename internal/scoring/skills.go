// Package scoring implements the hybrid match scorer: six sub-scores over a
// (candidate, job) snapshot pair combined into a weighted overall score with
// confidence, match reasons and improvement suggestions. Every sub-score is
// in [0.0, 1.0] and degrades to a documented neutral default when input data
// is missing; absence of data is never an error.
package scoring

import (
	"math"
	"sort"
)

// Skill-scorer neutral defaults. A job with no stated requirements should
// not penalize anyone; a candidate with no listed skills scores low but not
// zero, since total absence of data is worse than a poor match but must not
// hard-fail the candidate.
const (
	noRequiredSkillsDefault = 0.7
	noCandidateSkillsScore  = 0.2

	jaccardWeight  = 0.6
	coverageWeight = 0.4
)

// SkillMatchScore scores skill fit as 0.6·Jaccard + 0.4·coverage, capped at
// 1.0. Jaccard rewards overall overlap (penalizing extraneous candidate
// skills only mildly via the union denominator); coverage rewards satisfying
// the job's explicit requirement list even when the candidate carries many
// unrelated skills.
func SkillMatchScore(candidateSkills, requiredSkills map[string]struct{}) float64 {
	if len(requiredSkills) == 0 {
		return noRequiredSkillsDefault
	}
	if len(candidateSkills) == 0 {
		return noCandidateSkillsScore
	}

	intersection := 0
	for skill := range requiredSkills {
		if _, ok := candidateSkills[skill]; ok {
			intersection++
		}
	}
	union := len(candidateSkills) + len(requiredSkills) - intersection

	jaccard := float64(intersection) / float64(union)
	coverage := float64(intersection) / float64(len(requiredSkills))

	return math.Min(1.0, jaccardWeight*jaccard+coverageWeight*coverage)
}

// SharedSkills returns the required skills the candidate has, sorted for
// stable explanation output.
func SharedSkills(candidateSkills, requiredSkills map[string]struct{}) []string {
	shared := make([]string, 0)
	for skill := range requiredSkills {
		if _, ok := candidateSkills[skill]; ok {
			shared = append(shared, skill)
		}
	}
	sort.Strings(shared)
	return shared
}

// MissingSkills returns the required skills the candidate lacks, sorted for
// stable suggestion output.
func MissingSkills(candidateSkills, requiredSkills map[string]struct{}) []string {
	missing := make([]string, 0)
	for skill := range requiredSkills {
		if _, ok := candidateSkills[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	sort.Strings(missing)
	return missing
}

// SkillJaccard is the plain Jaccard similarity of two skill sets, used by
// the collaborative scorer's job-to-job similarity. Two empty sets are
// treated as identical.
func SkillJaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for skill := range a {
		if _, ok := b[skill]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
