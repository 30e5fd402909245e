package scoring

import (
	"strings"

	"github.com/talentmatch/go-match-engine/model"
)

// noContentDefault is returned when either side has no free text to
// compare: similarity cannot be computed, so the score is neutral.
const noContentDefault = 0.5

// contentScore compares the assembled candidate and job documents in a
// TF-IDF space fit over exactly that pair.
func (e *Engine) contentScore(candidate *model.CandidateSnapshot, job *model.JobSnapshot) float64 {
	candidateText := candidate.ContentText()
	jobText := job.ContentText()
	if strings.TrimSpace(candidateText) == "" || strings.TrimSpace(jobText) == "" {
		return noContentDefault
	}
	return e.vectorizer.CosineSimilarity(candidateText, jobText)
}
