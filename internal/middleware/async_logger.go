package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/logger"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/service"
)

// LogSink accepts activity log entries without blocking the caller.
type LogSink interface {
	// Log enqueues entry and reports whether it was accepted.
	Log(entry *model.LogEntry) bool
}

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing batches.
	NumWorkers int
	// BatchSize is the largest number of entries written in one call.
	BatchSize int
	// FlushInterval bounds how long an entry waits for its batch to fill.
	FlushInterval time.Duration
	// WriteTimeout is the timeout for one batch write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats is a snapshot of AsyncLogger counters.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
	Batches  int64 `json:"batches"`
}

// AsyncLogger batches activity log entries and writes them from a small
// worker pool. Request logs, audit records and analytics events all go
// through it, so a slow store never blocks a request or a bus publication.
// Entries that arrive while the buffer is full are dropped and counted.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entryCh        chan *model.LogEntry
	wg             sync.WaitGroup
	stopCh         chan struct{}
	stopOnce       sync.Once

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
	batches  atomic.Int64
}

func (cfg AsyncLoggerConfig) withDefaults() AsyncLoggerConfig {
	d := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = d.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = d.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = d.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = d.WriteTimeout
	}
	return cfg
}

// NewAsyncLogger starts the workers of an AsyncLogger. Unset config fields
// take their defaults, except NumWorkers, which falls back to one.
// It returns nil when loggingService is nil; a nil *AsyncLogger drops entries.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	cfg = cfg.withDefaults()
	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
	}

	al.wg.Add(cfg.NumWorkers)
	for range cfg.NumWorkers {
		go al.worker()
	}
	return al
}

// worker collects entries into batches and writes a batch once it is full or
// FlushInterval has passed. On stop it drains the queue before returning.
func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	add := func(entry *model.LogEntry) {
		batch = append(batch, entry)
		if len(batch) >= al.cfg.BatchSize {
			al.flush(batch)
			batch = batch[:0]
		}
	}

	for {
		select {
		case entry := <-al.entryCh:
			add(entry)
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = batch[:0]
			}
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					add(entry)
				default:
					if len(batch) > 0 {
						al.flush(batch)
					}
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	al.batches.Add(1)
	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(int64(len(batch)))
		metrics.RecordActivityLog("failed", len(batch))
		log := logger.Component("async_logger")
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write activity log batch")
		return
	}
	al.written.Add(int64(len(batch)))
	metrics.RecordActivityLog("written", len(batch))
}

// Log enqueues a log entry for async processing.
// Returns true if the entry was enqueued, false if the buffer is full or the
// logger is stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	select {
	case <-al.stopCh:
	default:
		select {
		case al.entryCh <- entry:
			al.enqueued.Add(1)
			return true
		default:
		}
	}

	al.dropped.Add(1)
	metrics.RecordActivityLog("dropped", 1)
	return false
}

// Stop writes pending entries and waits for the workers. Safe to call twice.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns current async logger counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
		Batches:  al.batches.Load(),
	}
}
