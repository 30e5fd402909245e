package scoring

import (
	"context"
	"fmt"

	"github.com/talentmatch/go-match-engine/model"
)

// Job-to-job similarity weights used when averaging over successful peer
// applications: skill overlap dominates, then seniority, company, location.
const (
	jobSimSkillWeight    = 0.4
	jobSimLevelWeight    = 0.3
	jobSimCompanyWeight  = 0.2
	jobSimLocationWeight = 0.1
)

// collaborativeScore approximates "people like you who succeeded applied to
// jobs like this one" without a trained recommender: find candidates at the
// same level sharing a fraction of the target's skills, look at their
// successful applications at the target job's company, and average the
// similarity of those jobs to the target job.
func (e *Engine) collaborativeScore(ctx context.Context, candidate *model.CandidateSnapshot, job *model.JobSnapshot) (float64, error) {
	cfg := e.settings.Collaborative

	peers, err := e.history.CandidatesAtLevel(ctx, candidate.ExperienceLevel, candidate.CandidateID)
	if err != nil {
		return 0, fmt.Errorf("listing similar candidates: %w", err)
	}

	candidateSkills := candidate.SkillSet()
	minShared := int(cfg.SkillOverlapFraction * float64(len(candidateSkills)))
	if minShared < 1 {
		minShared = 1
	}

	similarIDs := make([]string, 0, cfg.MaxSimilarCandidates)
	for _, peer := range peers {
		if sharedSkillCount(candidateSkills, peer.SkillSet()) >= minShared {
			similarIDs = append(similarIDs, peer.CandidateID)
			if len(similarIDs) >= cfg.MaxSimilarCandidates {
				break
			}
		}
	}

	if len(similarIDs) == 0 {
		return cfg.NoSimilarDefault, nil
	}

	applications, err := e.history.PeerApplicationsAtCompany(ctx, similarIDs, job.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("listing peer applications: %w", err)
	}

	var sum float64
	successes := 0
	for _, app := range applications {
		if !app.Status.Successful() {
			continue
		}
		sum += jobSimilarity(&app.Job, job)
		successes++
	}

	if successes == 0 {
		// Absence of positive peer signal at this company is mildly
		// discouraging, hence slightly below neutral.
		return cfg.NoSuccessDefault, nil
	}

	return sum / float64(successes), nil
}

// jobSimilarity scores how alike two postings are, weighted per the
// constants above. All factor values are in [0, 1], so the result is too.
func jobSimilarity(a, b *model.JobSnapshot) float64 {
	score := jobSimSkillWeight * SkillJaccard(a.RequiredSkillSet(), b.RequiredSkillSet())

	if a.ExperienceLevel.Rank() == b.ExperienceLevel.Rank() {
		score += jobSimLevelWeight
	}
	if a.CompanyID != "" && a.CompanyID == b.CompanyID {
		score += jobSimCompanyWeight
	}
	if a.Location != "" && normalizeLocation(a.Location) == normalizeLocation(b.Location) {
		score += jobSimLocationWeight
	}

	return score
}

func sharedSkillCount(a, b map[string]struct{}) int {
	count := 0
	for skill := range a {
		if _, ok := b[skill]; ok {
			count++
		}
	}
	return count
}
