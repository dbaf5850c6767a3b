// Package persist dispatches committed feature operations to the
// storage backend without blocking the interaction path. Saves are
// optimistic: the live state is already updated when the request is
// queued, and a failed write is logged, never rolled back.
package persist

import (
	"fmt"
	"sync"

	"github.com/cartomark/annotate/internal/channel"
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/storage"
	"github.com/cartomark/annotate/pkg/record"
)

const defaultQueueSize = 256

// Dependencies holds all dependencies for the persistence service.
type Dependencies struct {
	Backend    storage.Backend
	LogManager *logging.SlogManager

	// QueueSize overrides the request buffer capacity.
	QueueSize int
}

type request struct {
	delete bool
	id     string
	rec    record.Feature
}

// Service runs the background persistence worker.
type Service struct {
	deps Dependencies

	requests channel.Channel[request]
	stopOnce sync.Once
	done     chan struct{}
}

// NewService creates the persistence service. Call Start before use.
func NewService(deps Dependencies) *Service {
	size := deps.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Service{
		deps:     deps,
		requests: channel.New[request](size),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (s *Service) Start() {
	go s.run()
}

// Close drains outstanding requests and stops the worker.
func (s *Service) Close() {
	s.stopOnce.Do(func() {
		s.requests.Close()
		<-s.done
	})
}

// SaveAsync queues a save of the feature's current state. When the
// queue is full the request is dropped with an error log; the live
// state is unaffected either way.
func (s *Service) SaveAsync(f *feature.Feature) {
	req := request{id: f.ID, rec: feature.ToRecord(f)}
	if !s.requests.TrySend(req) {
		s.log("persist:SaveAsync", fmt.Sprintf("Queue full, dropping save for %s", f.ID), "ERROR")
	}
}

// DeleteAsync queues a delete for the given feature id.
func (s *Service) DeleteAsync(id string) {
	if !s.requests.TrySend(request{delete: true, id: id}) {
		s.log("persist:DeleteAsync", fmt.Sprintf("Queue full, dropping delete for %s", id), "ERROR")
	}
}

func (s *Service) run() {
	defer close(s.done)
	for req := range s.requests.Receive() {
		var err error
		if req.delete {
			err = s.deps.Backend.DeleteFeature(req.id)
		} else {
			err = s.deps.Backend.SaveFeature(req.rec)
		}
		if err != nil {
			s.log("persist:run", fmt.Sprintf("Persistence failed for %s: %v", req.id, err), "ERROR")
		}
	}
}

func (s *Service) log(functionName, data, level string) {
	if s.deps.LogManager != nil {
		s.deps.LogManager.WriteLog(functionName, data, level)
	}
}
