package calq

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// Loader resolves category ids to validated catalog data, building each
// category on first use and memoizing it for the process lifetime. Concurrent
// loads of the same id coalesce into a single build, so every caller shares
// the same Category and the same Unit instances. The search index and compound
// engine rely on that referential consistency.
//
// The cache is append-only: entries are added, never edited. Invalidate
// exists for tests and config reloads only.
type Loader struct {
	log   *zap.Logger
	mu    sync.RWMutex
	cache map[catalog.CategoryID]*catalog.Category
	group singleflight.Group

	essential []catalog.CategoryID
}

// essentialCategories is the fixed first-paint set warmed by
// InitializeEssential when no override is configured.
var essentialCategories = []catalog.CategoryID{"length", "mass", "temperature"}

// NewLoader creates a loader. essential may be nil to use the default
// first-paint set.
func NewLoader(log *zap.Logger, essential []catalog.CategoryID) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if len(essential) == 0 {
		essential = essentialCategories
	}
	return &Loader{
		log:       log,
		cache:     make(map[catalog.CategoryID]*catalog.Category),
		essential: essential,
	}
}

// Load resolves and memoizes a category, hiding whether it was already
// resident. Unknown ids fail with CategoryNotFoundError; malformed catalog
// data fails with IntegrityError and is never cached.
func (l *Loader) Load(ctx context.Context, id catalog.CategoryID) (*catalog.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	cat, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return cat, nil
	}

	v, err, _ := l.group.Do(string(id), func() (interface{}, error) {
		// A racing call may have populated the cache before this flight began.
		l.mu.RLock()
		cached, ok := l.cache[id]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		build, ok := catalog.LookupBuilder(id)
		if !ok {
			return nil, &CategoryNotFoundError{ID: id}
		}
		built := build()
		if err := built.Validate(); err != nil {
			return nil, &IntegrityError{CategoryID: id, Err: err}
		}

		l.mu.Lock()
		l.cache[id] = built
		l.mu.Unlock()

		l.log.Debug("category loaded", zap.String("category", string(id)), zap.Int("units", len(built.AllUnits())))
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Category), nil
}

// IsLoaded reports whether a category is resident. It never triggers a load.
func (l *Loader) IsLoaded(id catalog.CategoryID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[id]
	return ok
}

// InitializeEssential eagerly loads the first-paint category set. The engine
// awaits this before accepting conversions.
func (l *Loader) InitializeEssential(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range l.essential {
		id := id
		g.Go(func() error {
			_, err := l.Load(gctx, id)
			return err
		})
	}
	return g.Wait()
}

// Preload schedules background loads for the given categories without
// blocking the caller. Completion order and timing are not guaranteed;
// failures are logged, never surfaced.
func (l *Loader) Preload(ids ...catalog.CategoryID) {
	if len(ids) == 0 {
		return
	}
	go func() {
		g := new(errgroup.Group)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				if _, err := l.Load(context.Background(), id); err != nil {
					l.log.Warn("category preload failed", zap.String("category", string(id)), zap.Error(err))
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Invalidate drops a cached category. Intended for tests and config reloads.
func (l *Loader) Invalidate(id catalog.CategoryID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, id)
}

// Loaded returns the ids of all resident categories.
func (l *Loader) Loaded() []catalog.CategoryID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]catalog.CategoryID, 0, len(l.cache))
	for id := range l.cache {
		ids = append(ids, id)
	}
	return ids
}
