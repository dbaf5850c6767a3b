// Package postgres implements the storage.Backend interface using
// GORM/PostgreSQL with an internal queue and a background DB writer
// goroutine, so a committed drag never waits on the network.
package postgres

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cartomark/annotate/internal/database"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/queue"
	gormstore "github.com/cartomark/annotate/internal/storage/gorm"
	"github.com/cartomark/annotate/pkg/record"
)

const defaultFlushInterval = 500 * time.Millisecond

// Config holds configuration for the Postgres storage backend.
type Config struct {
	// DB overrides the connection; when nil, Init dials using the
	// viper db.* settings, falling back to local SQLite when the
	// server is unreachable.
	DB *gorm.DB

	// FallbackSqlitePath is the SQLite file used when Postgres is
	// unreachable. Empty keeps the fallback in memory.
	FallbackSqlitePath string

	// Logger receives connection-level events.
	Logger zerolog.Logger

	// FlushInterval is how often the writer drains the save queue.
	FlushInterval time.Duration
}

// Backend implements storage.Backend with queue-based writes.
type Backend struct {
	*gormstore.Backend
	cfg      Config
	log      *logging.SlogManager
	saves    *queue.Queue[record.Feature]
	stopChan chan struct{}
}

// New creates a new Postgres storage backend.
func New(cfg Config, logManager *logging.SlogManager) *Backend {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	return &Backend{
		cfg:   cfg,
		log:   logManager,
		saves: queue.New[record.Feature](),
	}
}

// Init connects, migrates the schema, and starts the writer goroutine.
func (b *Backend) Init() error {
	db := b.cfg.DB
	if db == nil {
		mgr := database.NewManager(b.cfg.Logger)
		mgr.SqliteFilePath = b.cfg.FallbackSqlitePath
		if err := mgr.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		if mgr.ShouldSaveLocal && b.log != nil {
			b.log.WriteLog("postgres:Init", "Postgres unreachable, using local SQLite fallback", "WARN")
		}
		db = mgr.DB
	}

	b.Backend = gormstore.New(gormstore.Dependencies{DB: db, LogManager: b.log})
	if err := b.Backend.Init(); err != nil {
		return err
	}

	b.stopChan = make(chan struct{})
	go b.writerLoop()
	return nil
}

// Close flushes pending saves and stops the writer.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
	}
	b.flush()
	return b.Backend.Close()
}

// SaveFeature queues the record; the writer goroutine persists it.
func (b *Backend) SaveFeature(rec record.Feature) error {
	b.saves.Push(rec)
	return nil
}

// writerLoop drains the save queue on a ticker.
func (b *Backend) writerLoop() {
	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.flush()
		}
	}
}

func (b *Backend) flush() {
	pending := b.saves.Drain()
	if len(pending) == 0 {
		return
	}

	// Later saves of the same feature supersede earlier ones within a
	// batch.
	latest := make(map[string]record.Feature, len(pending))
	order := make([]string, 0, len(pending))
	for _, rec := range pending {
		if _, seen := latest[rec.ID]; !seen {
			order = append(order, rec.ID)
		}
		latest[rec.ID] = rec
	}

	start := time.Now()
	for _, id := range order {
		if err := b.Backend.SaveFeature(latest[id]); err != nil {
			b.log.WriteLog("postgres:flush", fmt.Sprintf("Failed to save feature %s: %v", id, err), "ERROR")
		}
	}
	b.log.WriteLog("postgres:flush",
		fmt.Sprintf("Flushed %d feature saves in %s", len(order), time.Since(start)), "DEBUG")
}
