// Package actionlog implements the append-only action log: every component
// reports notable state transitions here, and a background worker batches
// the entries into the store off the hot path.
package actionlog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/domain"
)

// Storage is where batches physically land.
type Storage interface {
	WriteBatch(ctx context.Context, entries []domain.LogEntry) error
}

// Recorder is the write side consumed by the other components.
type Recorder interface {
	Record(entry domain.LogEntry)
	Info(agentID, message string)
	Warn(agentID, message string)
	Error(agentID, message string)
}

// BufferGauge lets the metrics layer observe queue depth without a
// dependency cycle.
type BufferGauge interface {
	Set(float64)
}

type Log struct {
	ch     chan domain.LogEntry
	repo   Storage
	logger *zap.Logger
	gauge  BufferGauge
	wg     sync.WaitGroup

	isClosed int32 // atomic: 1 once Stop begins, Record becomes a no-op
}

const (
	bufferSize    = 10000
	batchSize     = 100
	flushInterval = 500 * time.Millisecond
)

func New(repo Storage, logger *zap.Logger) *Log {
	return &Log{
		ch:     make(chan domain.LogEntry, bufferSize),
		repo:   repo,
		logger: logger.Named("actionlog"),
	}
}

// SetBufferGauge attaches an optional queue-depth gauge. Call before Start.
func (l *Log) SetBufferGauge(g BufferGauge) { l.gauge = g }

func (l *Log) Start() {
	l.wg.Add(1)
	go l.worker()
}

// Stop locks the channel and drains the remaining buffer before returning.
func (l *Log) Stop() {
	atomic.StoreInt32(&l.isClosed, 1)

	// Let in-flight Record calls slip through before the close.
	time.Sleep(10 * time.Millisecond)

	l.logger.Info("stopping action log: flushing buffer")
	close(l.ch)
	l.wg.Wait()
	l.logger.Info("action log stopped")
}

// Record enqueues one entry. The call never blocks: when the buffer is full
// the entry is shed into the process logger instead of stalling the caller.
func (l *Log) Record(entry domain.LogEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if atomic.LoadInt32(&l.isClosed) == 1 {
		l.logger.Warn("log entry dropped: action log is stopping",
			zap.String("message", entry.Message))
		return
	}

	select {
	case l.ch <- entry:
		if l.gauge != nil {
			l.gauge.Set(float64(len(l.ch)))
		}
	default:
		l.logger.Error("action_log_buffer_overflow",
			zap.String("message", entry.Message))
	}
}

// Info records an INFO entry scoped to an agent; agentID may be empty for
// system-level events.
func (l *Log) Info(agentID, message string) { l.record(domain.LevelInfo, agentID, message) }

func (l *Log) Warn(agentID, message string) { l.record(domain.LevelWarn, agentID, message) }

func (l *Log) Error(agentID, message string) { l.record(domain.LevelError, agentID, message) }

func (l *Log) record(level domain.LogLevel, agentID, message string) {
	entry := domain.LogEntry{Level: level, Message: message}
	if agentID != "" {
		entry.AgentID = &agentID
	}
	l.Record(entry)
}

func (l *Log) worker() {
	defer l.wg.Done()

	batch := make([]domain.LogEntry, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Background context: the caller's context may already be gone
		// during the final drain.
		if err := l.repo.WriteBatch(context.Background(), batch); err != nil {
			l.logger.Error("action log flush failed", zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-l.ch:
			if !ok {
				// Channel closed by Stop: everything queued has been read,
				// final flush and exit.
				flush()
				l.logger.Info("action log worker finished")
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
