package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/talentmatch/go-match-engine/internal/errors"
	"github.com/talentmatch/go-match-engine/model"
)

// MemoryStore is an in-memory implementation of every provider interface.
// It backs the demo mode (no DATABASE_URL configured) and the test suite.
// Jobs and candidates keep insertion order so ranking output is stable.
type MemoryStore struct {
	mu             sync.RWMutex
	candidates     map[string]model.CandidateSnapshot
	candidateOrder []string
	jobs           map[string]model.JobSnapshot
	jobOrder       []string
	applications   []model.PeerApplication
	recentMatches  map[string]time.Time // "<candidate>|<job>" -> expiry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		candidates:    make(map[string]model.CandidateSnapshot),
		jobs:          make(map[string]model.JobSnapshot),
		recentMatches: make(map[string]time.Time),
	}
}

// PutCandidate adds or replaces a candidate snapshot.
func (s *MemoryStore) PutCandidate(candidate model.CandidateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.candidates[candidate.CandidateID]; !exists {
		s.candidateOrder = append(s.candidateOrder, candidate.CandidateID)
	}
	s.candidates[candidate.CandidateID] = candidate
}

// PutJob adds or replaces a job snapshot.
func (s *MemoryStore) PutJob(job model.JobSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.JobID]; !exists {
		s.jobOrder = append(s.jobOrder, job.JobID)
	}
	s.jobs[job.JobID] = job
}

// AddApplication records a historical application.
func (s *MemoryStore) AddApplication(app model.PeerApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, app)
}

// GetCandidate implements services.SnapshotProvider.
func (s *MemoryStore) GetCandidate(_ context.Context, candidateID string) (*model.CandidateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return nil, errors.NewCandidateNotFoundError(candidateID)
	}
	return &candidate, nil
}

// GetJob implements services.SnapshotProvider.
func (s *MemoryStore) GetJob(_ context.Context, jobID string) (*model.JobSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return &job, nil
}

// ListActiveJobs implements services.SnapshotProvider.
func (s *MemoryStore) ListActiveJobs(_ context.Context) ([]model.JobSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	jobs := make([]model.JobSnapshot, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		job := s.jobs[id]
		if job.Eligible(now) {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// ListVisibleCandidates implements services.SnapshotProvider.
func (s *MemoryStore) ListVisibleCandidates(_ context.Context) ([]model.CandidateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]model.CandidateSnapshot, 0, len(s.candidateOrder))
	for _, id := range s.candidateOrder {
		candidate := s.candidates[id]
		if candidate.Visibility == model.VisibilityPublic || candidate.Visibility == model.VisibilityCompaniesOnly {
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

// RecentlyUpdatedCandidateIDs implements services.SnapshotProvider.
func (s *MemoryStore) RecentlyUpdatedCandidateIDs(_ context.Context, since time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0)
	for _, id := range s.candidateOrder {
		if !s.candidates[id].UpdatedAt.Before(since) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CandidatesAtLevel implements services.ApplicationHistoryProvider.
func (s *MemoryStore) CandidatesAtLevel(_ context.Context, level model.ExperienceLevel, excludeID string) ([]model.CandidateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]model.CandidateSnapshot, 0)
	for _, id := range s.candidateOrder {
		if id == excludeID {
			continue
		}
		candidate := s.candidates[id]
		if candidate.ExperienceLevel.Rank() == level.Rank() {
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

// PeerApplicationsAtCompany implements services.ApplicationHistoryProvider.
func (s *MemoryStore) PeerApplicationsAtCompany(_ context.Context, candidateIDs []string, companyID string) ([]model.PeerApplication, error) {
	wanted := make(map[string]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	apps := make([]model.PeerApplication, 0)
	for _, app := range s.applications {
		if _, ok := wanted[app.CandidateID]; !ok {
			continue
		}
		if app.Job.CompanyID != companyID {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// AppliedJobIDs implements services.ApplicationHistoryProvider.
func (s *MemoryStore) AppliedJobIDs(_ context.Context, candidateID string, since time.Time) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{})
	for _, app := range s.applications {
		if app.CandidateID == candidateID && !app.AppliedAt.Before(since) {
			ids[app.Job.JobID] = struct{}{}
		}
	}
	return ids, nil
}

// HasApplied implements services.ApplicationHistoryProvider.
func (s *MemoryStore) HasApplied(_ context.Context, candidateID, jobID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.applications {
		if app.CandidateID == candidateID && app.Job.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

// MarkMatched implements services.RecencyStore.
func (s *MemoryStore) MarkMatched(_ context.Context, candidateID, jobID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentMatches[recencyKey(candidateID, jobID)] = time.Now().Add(ttl)
	return nil
}

// RecentlyMatched implements services.RecencyStore.
func (s *MemoryStore) RecentlyMatched(_ context.Context, candidateID, jobID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiry, ok := s.recentMatches[recencyKey(candidateID, jobID)]
	return ok && expiry.After(time.Now()), nil
}

func recencyKey(candidateID, jobID string) string {
	return strings.Join([]string{candidateID, jobID}, "|")
}
