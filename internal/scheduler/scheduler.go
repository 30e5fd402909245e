// Package scheduler wires up the cron entry that periodically sweeps
// recently updated candidate profiles and emits match notifications.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/internal/recommend"
	"github.com/talentmatch/go-match-engine/services"
)

// Scheduler wraps robfig/cron and manages the notification sweep loop.
type Scheduler struct {
	cron      *cron.Cron
	snapshots services.SnapshotProvider
	service   *recommend.Service
	spec      string // cron spec, e.g. "@every 1h"
	logger    *zap.Logger

	mu        sync.Mutex
	lastSweep time.Time
}

// New creates a Scheduler firing on the given cron spec.
func New(snapshots services.SnapshotProvider, service *recommend.Service, spec string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		snapshots: snapshots,
		service:   service,
		spec:      spec,
		logger:    logger,
		lastSweep: time.Now(),
	}
}

// Start registers the sweep and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("notification sweep scheduled", zap.String("spec", s.spec))
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("notification sweep stopped")
}

// RunSweep finds candidates updated since the previous sweep and emits
// profile-update match notifications for each of them.
func (s *Scheduler) RunSweep(ctx context.Context) {
	s.mu.Lock()
	since := s.lastSweep
	s.lastSweep = time.Now()
	s.mu.Unlock()

	candidateIDs, err := s.snapshots.RecentlyUpdatedCandidateIDs(ctx, since)
	if err != nil {
		s.logger.Warn("sweep failed to list updated candidates", zap.Error(err))
		return
	}

	if len(candidateIDs) == 0 {
		return
	}

	s.logger.Info("sweeping updated candidates", zap.Int("count", len(candidateIDs)))
	emitted := 0
	for _, candidateID := range candidateIDs {
		n, err := s.service.NotifyProfileUpdate(ctx, candidateID)
		if err != nil {
			s.logger.Warn("sweep failed for candidate",
				zap.String("candidate_id", candidateID),
				zap.Error(err))
			continue
		}
		emitted += n
	}

	s.logger.Info("sweep complete",
		zap.Int("candidates", len(candidateIDs)),
		zap.Int("notifications", emitted))
}
