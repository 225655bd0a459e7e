package calq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// BatchItem is one independent conversion request within a batch.
type BatchItem struct {
	Value      float64
	CategoryID catalog.CategoryID
	FromUnitID catalog.UnitID
	ToUnitID   catalog.UnitID
}

// BatchItemResult pairs an item's index with its outcome. Exactly one of
// Result and Err is set.
type BatchItemResult struct {
	Index  int
	Result *Result
	Err    error
}

// BatchResult correlates a dispatched batch with its reassembled results.
type BatchResult struct {
	ID        string
	Items     []BatchItemResult
	CreatedAt time.Time
}

// BatchStrategy executes a batch of conversions. The worker-backed strategy
// and the synchronous fallback must be observably equivalent: same results,
// same error shapes, per item. The strategy is injectable so tests can compare
// the two paths directly.
type BatchStrategy interface {
	Dispatch(ctx context.Context, items []BatchItem) []BatchItemResult
}

// Dispatcher accepts batches of independent conversion requests, offloads
// them to its strategy, and reassembles results keyed by a unique batch id.
// If the worker strategy fails, the dispatcher falls back to the synchronous
// strategy and recreates the worker, so no batch is left unresolved.
type Dispatcher struct {
	engine   *Engine
	log      *zap.Logger
	strategy BatchStrategy
	fallback *syncStrategy
}

// NewDispatcher wires a dispatcher for the engine. With sync=true the worker
// is skipped entirely and every batch runs on the caller's goroutine.
func NewDispatcher(engine *Engine, log *zap.Logger, sync bool) *Dispatcher {
	d := &Dispatcher{
		engine:   engine,
		log:      log,
		fallback: &syncStrategy{engine: engine},
	}
	if sync {
		d.strategy = d.fallback
	} else {
		d.strategy = newWorkerStrategy(engine, log)
	}
	return d
}

// Convert dispatches a batch and blocks until every item has resolved. Item
// failures are reported per item, never as a batch-level error; the returned
// error covers only dispatch-level problems (context cancellation).
func (d *Dispatcher) Convert(ctx context.Context, items []BatchItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &BatchResult{
		ID:        newBatchID(),
		CreatedAt: time.Now(),
	}

	results := d.strategy.Dispatch(ctx, items)
	if results == nil && d.strategy != BatchStrategy(d.fallback) {
		// Worker unavailable mid-flight; rerun the whole batch synchronously.
		d.log.Warn("batch worker unavailable, falling back to synchronous dispatch", zap.String("batch", res.ID))
		results = d.fallback.Dispatch(ctx, items)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Items = results

	d.engine.events.Publish(Event{
		Type:      EventBatch,
		Message:   fmt.Sprintf("batch %s: %d items", res.ID, len(items)),
		Timestamp: res.CreatedAt,
	})
	return res, nil
}

// Close stops the background worker, if any.
func (d *Dispatcher) Close() {
	if w, ok := d.strategy.(*workerStrategy); ok {
		w.Close()
	}
}

// newBatchID builds an id unique per call so concurrent batches cannot
// cross-talk.
func newBatchID() string {
	return fmt.Sprintf("batch_%d_%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// convertItems is the single conversion path shared by both strategies,
// which is what makes them observably equivalent.
func convertItems(ctx context.Context, engine *Engine, items []BatchItem) []BatchItemResult {
	results := make([]BatchItemResult, len(items))
	for i, item := range items {
		r, err := engine.Convert(ctx, item.Value, item.CategoryID, item.FromUnitID, item.ToUnitID, nil)
		results[i] = BatchItemResult{Index: i, Result: r, Err: err}
	}
	return results
}

// syncStrategy runs the batch on the caller's goroutine.
type syncStrategy struct {
	engine *Engine
}

func (s *syncStrategy) Dispatch(ctx context.Context, items []BatchItem) []BatchItemResult {
	return convertItems(ctx, s.engine, items)
}

// workerStrategy serializes batches to a background goroutine. The worker is
// an isolation device, not a performance one, and it is recreated on demand if
// it dies.
type workerStrategy struct {
	engine *Engine
	log    *zap.Logger

	mu       sync.Mutex
	requests chan *batchRequest
	closed   bool
}

type batchRequest struct {
	ctx   context.Context
	items []BatchItem
	reply chan []BatchItemResult
}

func newWorkerStrategy(engine *Engine, log *zap.Logger) *workerStrategy {
	w := &workerStrategy{engine: engine, log: log}
	w.mu.Lock()
	w.spawnLocked()
	w.mu.Unlock()
	return w
}

// spawnLocked starts a fresh worker goroutine. Callers hold w.mu. The queue
// is buffered so enqueueing under the lock never blocks on a busy worker.
func (w *workerStrategy) spawnLocked() {
	w.requests = make(chan *batchRequest, workerQueueSize)
	go w.run(w.requests)
}

const workerQueueSize = 16

func (w *workerStrategy) run(requests chan *batchRequest) {
	for req := range requests {
		w.serve(req)
	}
}

// serve answers one request, converting a panic into a nil reply so the
// dispatcher can fall back; the worker itself survives.
func (w *workerStrategy) serve(req *batchRequest) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("batch worker panic", zap.Any("panic", r))
			req.reply <- nil
		}
	}()
	req.reply <- convertItems(req.ctx, w.engine, req.items)
}

// Dispatch hands the batch to the worker and waits for the reply. A nil
// return means the worker could not serve the batch; the dispatcher reruns it
// synchronously and the worker has already been recreated for the next call.
func (w *workerStrategy) Dispatch(ctx context.Context, items []BatchItem) []BatchItemResult {
	req := &batchRequest{ctx: ctx, items: items, reply: make(chan []BatchItemResult, 1)}

	// Enqueue under the lock so a concurrent restart cannot close the
	// channel out from under the send. A full queue reads as unavailable.
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	select {
	case w.requests <- req:
		w.mu.Unlock()
	default:
		w.mu.Unlock()
		return nil
	}

	select {
	case results := <-req.reply:
		if results == nil {
			w.restart()
		}
		return results
	case <-ctx.Done():
		return nil
	}
}

// restart replaces a worker that failed mid-flight.
func (w *workerStrategy) restart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	close(w.requests)
	w.spawnLocked()
}

func (w *workerStrategy) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.requests)
}
