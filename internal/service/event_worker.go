package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/metrics"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// HistoryBatchWriter is implemented by *repository.QueryRepo.
type HistoryBatchWriter interface {
	InsertBatch(ctx context.Context, entries []model.QueryHistoryEntry) error
}

// maxPendingHistory bounds the buffer when the database is unreachable.
const maxPendingHistory = 10_000

// EventWorker buffers query history entries and writes them in batches so
// a burst of searches costs one round trip per window.
type EventWorker struct {
	store   HistoryBatchWriter
	window  time.Duration
	log     zerolog.Logger
	flushed chan struct{}

	mu      sync.Mutex
	pending []model.QueryHistoryEntry
}

func NewEventWorker(store HistoryBatchWriter, window time.Duration, logger zerolog.Logger) *EventWorker {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &EventWorker{
		store:   store,
		window:  window,
		log:     logger,
		flushed: make(chan struct{}),
	}
}

// Enqueue buffers an entry for the next flush. It never blocks on the database.
func (w *EventWorker) Enqueue(entry model.QueryHistoryEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) >= maxPendingHistory {
		w.log.Warn().Int("pending", len(w.pending)).Msg("event-worker: buffer full, dropping oldest entry")
		w.pending = w.pending[1:]
	}
	w.pending = append(w.pending, entry)
}

// Pending returns the number of buffered entries.
func (w *EventWorker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Start flushes every window until ctx is cancelled, then flushes once more.
// Done is closed after the final flush.
func (w *EventWorker) Start(ctx context.Context) {
	w.log.Info().Dur("window", w.window).Msg("event-worker: starting")
	defer close(w.flushed)

	ticker := time.NewTicker(w.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Flush(ctx)
		case <-ctx.Done():
			// final flush with a fresh context; ctx is already cancelled
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.Flush(flushCtx)
			cancel()
			w.log.Info().Msg("event-worker: stopped")
			return
		}
	}
}

// Done is closed once Start has returned.
func (w *EventWorker) Done() <-chan struct{} {
	return w.flushed
}

// Flush writes everything buffered. On failure the batch is put back at the
// front of the buffer for the next attempt.
func (w *EventWorker) Flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()

	if err := w.store.InsertBatch(ctx, batch); err != nil {
		w.log.Error().Err(err).Int("entries", len(batch)).Msg("event-worker: flush failed, will retry")
		w.mu.Lock()
		w.pending = append(batch, w.pending...)
		if over := len(w.pending) - maxPendingHistory; over > 0 {
			w.pending = w.pending[over:]
		}
		w.mu.Unlock()
		return
	}

	metrics.EventsFlushed.Add(float64(len(batch)))
	w.log.Debug().Int("entries", len(batch)).Msg("event-worker: batch flushed")
}
