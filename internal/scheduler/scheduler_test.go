package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/recommend"
	"github.com/talentmatch/go-match-engine/internal/scoring"
	"github.com/talentmatch/go-match-engine/internal/store"
	"github.com/talentmatch/go-match-engine/model"
)

type countingNotifier struct {
	mu     sync.Mutex
	events []model.MatchEvent
}

func (n *countingNotifier) NotifyMatch(_ context.Context, event model.MatchEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func newSweepFixture(t *testing.T) (*Scheduler, *store.MemoryStore, *countingNotifier) {
	t.Helper()

	st := store.NewMemoryStore()
	settings := config.Default()
	notifier := &countingNotifier{}

	engine, err := scoring.NewEngine(settings, st, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build scoring engine: %v", err)
	}
	service, err := recommend.NewService(settings, st, st, engine, st, notifier, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build recommendation service: %v", err)
	}

	sweep := New(st, service, "@every 1h", zap.NewNop())
	return sweep, st, notifier
}

func TestRunSweep_NoUpdatedCandidates(t *testing.T) {
	sweep, st, notifier := newSweepFixture(t)

	// Candidate updated before the scheduler was constructed
	st.PutCandidate(model.CandidateSnapshot{
		CandidateID: "cand-old",
		Visibility:  model.VisibilityPublic,
		UpdatedAt:   time.Now().Add(-48 * time.Hour),
	})

	sweep.RunSweep(context.Background())

	if notifier.count() != 0 {
		t.Errorf("Expected no notifications, got %d", notifier.count())
	}
}

func TestRunSweep_EmitsForUpdatedCandidate(t *testing.T) {
	sweep, st, notifier := newSweepFixture(t)

	// A strong pair: identical skills, level, location and a successful
	// peer application lifting the collaborative score.
	job := model.JobSnapshot{
		JobID:           "job-1",
		CompanyID:       "acme",
		RequiredSkills:  []string{"go", "postgres", "kubernetes"},
		ExperienceLevel: model.ExperienceSenior,
		Location:        "Berlin",
		RemoteType:      model.RemoteTypeRemote,
		SalaryMin:       85000,
		SalaryMax:       115000,
		Title:           "Senior Backend Engineer",
		Description:     "Go services with Postgres on Kubernetes",
		Requirements:    "Go, Postgres, Kubernetes",
		Status:          model.JobStatusActive,
		PostedAt:        time.Now(),
	}
	st.PutJob(job)
	st.PutCandidate(model.CandidateSnapshot{
		CandidateID:     "cand-1",
		Skills:          []string{"go", "postgres", "kubernetes"},
		ExperienceLevel: model.ExperienceSenior,
		ExperienceYears: 7,
		Location:        "Berlin",
		SalaryMin:       80000,
		SalaryMax:       110000,
		Bio:             "Backend engineer building Go services on Kubernetes",
		CurrentTitle:    "Senior Backend Engineer",
		WorkHistoryText: "Designed Go microservices backed by Postgres",
		Visibility:      model.VisibilityPublic,
		UpdatedAt:       time.Now().Add(time.Minute),
	})
	st.PutCandidate(model.CandidateSnapshot{
		CandidateID:     "peer-1",
		Skills:          []string{"go", "postgres", "kubernetes"},
		ExperienceLevel: model.ExperienceSenior,
		Visibility:      model.VisibilityPrivate,
		UpdatedAt:       time.Now().Add(-48 * time.Hour),
	})
	st.AddApplication(model.PeerApplication{
		CandidateID: "peer-1",
		Job:         job,
		Status:      model.ApplicationAccepted,
		AppliedAt:   time.Now().Add(-60 * 24 * time.Hour),
	})

	ctx := context.Background()
	sweep.RunSweep(ctx)

	if notifier.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", notifier.count())
	}
	if notifier.events[0].Type != model.MatchEventProfileUpdate {
		t.Errorf("Expected profile_update event, got %s", notifier.events[0].Type)
	}
	if notifier.events[0].CandidateID != "cand-1" {
		t.Errorf("Expected event for cand-1, got %s", notifier.events[0].CandidateID)
	}

	// Second sweep: candidate no longer counts as updated, and the
	// recency store would suppress the pair anyway.
	sweep.RunSweep(ctx)
	if notifier.count() != 1 {
		t.Errorf("Expected no additional notifications, got %d", notifier.count())
	}
}
