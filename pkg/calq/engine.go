package calq

import (
	"context"

	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// Engine is the conversion engine facade: it owns the category loader/cache,
// the event registry, and the batch dispatcher, and exposes the conversion,
// compound, and search operations. It is safe for concurrent use.
//
// The engine is an explicit context object rather than a set of module-level
// singletons: construct one at startup and pass it to consumers.
type Engine struct {
	cfg        Config
	log        *zap.Logger
	loader     *Loader
	events     *EventRegistry
	dispatcher *Dispatcher
}

// Option customizes engine construction.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithSyncBatch forces every batch to run synchronously on the caller's
// goroutine. The results are identical to worker-backed dispatch.
func WithSyncBatch() Option {
	return func(e *Engine) { e.cfg.SyncBatch = true }
}

// New creates an engine. Call Initialize before accepting conversions and
// Close when done.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg: DefaultConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loader = NewLoader(e.log, e.cfg.essentialIDs())
	e.events = NewEventRegistry()
	e.dispatcher = NewDispatcher(e, e.log, e.cfg.SyncBatch)
	return e
}

// Initialize eagerly loads the essential category set. The engine accepts
// conversions only after this returns.
func (e *Engine) Initialize(ctx context.Context) error {
	return e.loader.InitializeEssential(ctx)
}

// Close releases background resources. The engine must not be used after
// Close.
func (e *Engine) Close() {
	e.dispatcher.Close()
}

// Loader exposes the category loader for warm-up and residency checks.
func (e *Engine) Loader() *Loader {
	return e.loader
}

// Events exposes the engine's event registry for subscribers.
func (e *Engine) Events() *EventRegistry {
	return e.events
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ConvertBatch dispatches a batch of independent conversions. See Dispatcher.
func (e *Engine) ConvertBatch(ctx context.Context, items []BatchItem) (*BatchResult, error) {
	return e.dispatcher.Convert(ctx, items)
}

// Category loads and returns a category definition.
func (e *Engine) Category(ctx context.Context, id catalog.CategoryID) (*catalog.Category, error) {
	return e.loader.Load(ctx, id)
}

// Categories lists every known category id.
func (e *Engine) Categories() []catalog.CategoryID {
	return catalog.CategoryIDs()
}
