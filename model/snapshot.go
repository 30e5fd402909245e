// Package model defines the data types exchanged between the matching
// engine, its providers, and the API layer.
package model

import (
	"strings"
	"time"
)

// ExperienceLevel is an ordered seniority scale. Rank() defines the order
// used by the experience scorer.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

var experienceRanks = map[ExperienceLevel]int{
	ExperienceEntry:     0,
	ExperienceJunior:    1,
	ExperienceMid:       2,
	ExperienceSenior:    3,
	ExperienceLead:      4,
	ExperienceExecutive: 5,
}

// Rank returns the ordinal position of the level (0 = entry ... 5 = executive).
// Unknown levels map to the mid rank so a malformed value degrades instead of
// dominating or zeroing the score.
func (l ExperienceLevel) Rank() int {
	if rank, ok := experienceRanks[ExperienceLevel(strings.ToLower(string(l)))]; ok {
		return rank
	}
	return experienceRanks[ExperienceMid]
}

// RemoteType describes a job's physical-presence requirement.
type RemoteType string

const (
	RemoteTypeOnsite RemoteType = "onsite"
	RemoteTypeRemote RemoteType = "remote"
	RemoteTypeHybrid RemoteType = "hybrid"
)

// Visibility controls which searches a candidate profile appears in.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityCompaniesOnly Visibility = "companies_only"
	VisibilityPrivate       Visibility = "private"
)

// JobStatus is the lifecycle state of a job posting. Only active postings
// are eligible for scoring.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

// CandidateSnapshot is an immutable read-only view of a candidate assembled
// for a single scoring call. Any field except CandidateID may be empty;
// scorers degrade to neutral defaults instead of failing.
type CandidateSnapshot struct {
	CandidateID        string          `json:"candidate_id"`
	Skills             []string        `json:"skills"` // normalized: lower-cased, deduplicated
	ExperienceLevel    ExperienceLevel `json:"experience_level"`
	ExperienceYears    int             `json:"experience_years"`
	Location           string          `json:"location,omitempty"`
	PreferredLocations []string        `json:"preferred_locations,omitempty"`
	SalaryMin          int             `json:"salary_min,omitempty"` // 0 means unspecified
	SalaryMax          int             `json:"salary_max,omitempty"` // 0 means unspecified
	Bio                string          `json:"bio,omitempty"`
	CurrentTitle       string          `json:"current_title,omitempty"`
	WorkHistoryText    string          `json:"work_history_text,omitempty"`
	Visibility         Visibility      `json:"visibility,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at,omitempty"`
}

// SkillSet returns the candidate's skills as a lower-cased set.
func (c *CandidateSnapshot) SkillSet() map[string]struct{} {
	return toSkillSet(c.Skills)
}

// ContentText assembles the free-text document used by the content scorer.
func (c *CandidateSnapshot) ContentText() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Bio, c.CurrentTitle, strings.Join(c.Skills, " "), c.WorkHistoryText} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// JobSnapshot is an immutable read-only view of a job posting assembled for
// a single scoring call.
type JobSnapshot struct {
	JobID            string          `json:"job_id"`
	CompanyID        string          `json:"company_id"`
	RequiredSkills   []string        `json:"required_skills"` // normalized: lower-cased, deduplicated
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	Location         string          `json:"location,omitempty"`
	RemoteType       RemoteType      `json:"remote_type,omitempty"`
	SalaryMin        int             `json:"salary_min,omitempty"`
	SalaryMax        int             `json:"salary_max,omitempty"`
	Title            string          `json:"title,omitempty"`
	Description      string          `json:"description,omitempty"`
	Requirements     string          `json:"requirements,omitempty"`
	Responsibilities string          `json:"responsibilities,omitempty"`
	Status           JobStatus       `json:"status"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	PostedAt         time.Time       `json:"posted_at,omitempty"`
}

// RequiredSkillSet returns the job's required skills as a lower-cased set.
func (j *JobSnapshot) RequiredSkillSet() map[string]struct{} {
	return toSkillSet(j.RequiredSkills)
}

// ContentText assembles the free-text document used by the content scorer.
func (j *JobSnapshot) ContentText() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{j.Title, j.Description, j.Requirements, j.Responsibilities, strings.Join(j.RequiredSkills, " ")} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Eligible reports whether the posting can be scored: active and either
// without an expiry or expiring after now.
func (j *JobSnapshot) Eligible(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.ExpiresAt != nil && !j.ExpiresAt.After(now) {
		return false
	}
	return true
}

func toSkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
