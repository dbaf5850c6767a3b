// Package monitor periodically snapshots engine state into telemetry,
// so a long edit session leaves a timeline of feature and selection
// counts.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/telemetry"
)

const defaultInterval = 30 * time.Second

// StateProvider reports the engine counters the monitor samples.
type StateProvider interface {
	Len() int
	Selection() []string
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Engine     StateProvider
	Telemetry  *telemetry.Manager
	LogManager *logging.SlogManager

	// Interval between snapshots. Zero uses the default.
	Interval time.Duration
}

// Service manages periodic state snapshots.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = defaultInterval
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning reports whether the snapshot loop is active.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Start launches the snapshot loop. It is a no-op when already running.
func (s *Service) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	go s.run()
}

// Stop halts the snapshot loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.stopChan)
}

func (s *Service) run() {
	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Snapshot()
		}
	}
}

// Snapshot writes one engine state point immediately.
func (s *Service) Snapshot() {
	point := telemetry.SessionPoint(s.deps.Engine.Len(), len(s.deps.Engine.Selection()))
	err := s.deps.Telemetry.WritePoint(context.Background(), "engine_performance", point)
	if err != nil && s.deps.LogManager != nil {
		s.deps.LogManager.WriteLog("monitor:Snapshot", fmt.Sprintf("Writing state point failed: %v", err), "WARN")
	}
}
