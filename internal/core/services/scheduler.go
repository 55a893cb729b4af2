package services

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyKeep is how many cycle results are retained.
const historyKeep = 100

// CycleRunner performs one scheduler cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleResult, error)
}

// Scheduler repeats a cycle on a fixed interval until stopped.
//
// A cycle that fails or panics is logged with its stack trace and followed
// by the short error back-off instead of the full interval. The loop itself
// never exits on a cycle failure.
type Scheduler struct {
	config domain.SchedulerConfig
	runner CycleRunner
	store  driven.SchedulerStore

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewScheduler creates a scheduler. store may be nil.
func NewScheduler(config domain.SchedulerConfig, runner CycleRunner, store driven.SchedulerStore) *Scheduler {
	return &Scheduler{
		config: config.Normalised(),
		runner: runner,
		store:  store,
	}
}

// Start runs cycles until Stop is called or ctx is cancelled.
// This method blocks.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return domain.ErrSchedulerRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		if s.stopped(ctx, stopCh) {
			return ctx.Err()
		}

		result := s.runCycle(ctx)
		s.record(ctx, result)

		wait := s.config.Interval
		if !result.Success {
			wait = s.config.ErrorBackoff
			log.Printf("scheduler: retrying in %s", wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-stopCh:
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Stop requests termination. A cycle in progress completes; a pending
// sleep is interrupted.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.stopCh == nil {
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	return nil
}

// State reports whether the loop is running.
func (s *Scheduler) State() domain.SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.SchedulerRunning
	}
	return domain.SchedulerStopped
}

// History returns recent cycle results, most recent first.
func (s *Scheduler) History(ctx context.Context, limit int) ([]domain.CycleResult, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.History(ctx, limit)
}

// stopped reports whether Stop was called or ctx is done.
func (s *Scheduler) stopped(ctx context.Context, stopCh <-chan struct{}) bool {
	select {
	case <-stopCh:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// runCycle runs one cycle and converts errors and panics into a result.
func (s *Scheduler) runCycle(ctx context.Context) (result *domain.CycleResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: cycle panicked: %v\n%s", r, debug.Stack())
			result = &domain.CycleResult{Error: fmt.Sprintf("panic: %v", r)}
		}
		result.ID = uuid.NewString()
		result.StartedAt = started
		result.EndedAt = time.Now()
	}()

	res, err := s.runner.RunCycle(ctx)
	if res == nil {
		res = &domain.CycleResult{}
	}
	if err != nil {
		log.Printf("scheduler: cycle failed: %v\n%s", err, debug.Stack())
		res.Success = false
		res.Error = err.Error()
		return res
	}

	res.Success = true
	log.Printf("scheduler: cycle checked %d repositories, delivered %d reports",
		res.ReposChecked, res.ReportsDelivered)
	return res
}

func (s *Scheduler) record(ctx context.Context, result *domain.CycleResult) {
	if s.store == nil {
		return
	}
	// Use a fresh context so a cancelled run is still recorded.
	recordCtx := context.WithoutCancel(ctx)
	if err := s.store.RecordResult(recordCtx, result); err != nil {
		log.Printf("scheduler: failed to record result %s: %v", result.ID, err)
	}
	if err := s.store.PruneHistory(recordCtx, historyKeep); err != nil {
		log.Printf("scheduler: failed to prune history: %v", err)
	}
}
