package model

import "time"

// ApplicationStatus is the outcome state of a submitted application.
type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// Successful reports whether the application counts as a positive outcome
// for the collaborative scorer.
func (s ApplicationStatus) Successful() bool {
	switch s {
	case ApplicationAccepted, ApplicationOffered, ApplicationShortlisted:
		return true
	}
	return false
}

// PeerApplication is a historical application by some candidate, joined
// with a snapshot of the job it targeted. The collaborative scorer consumes
// these to approximate "people like you who succeeded here".
type PeerApplication struct {
	CandidateID string            `json:"candidate_id"`
	Job         JobSnapshot       `json:"job"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
}
