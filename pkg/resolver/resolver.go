// Package resolver expands an artifact into its direct declared
// dependencies, memoizing both successful resolutions and confirmed absences.
//
// Each artifact moves through a small state machine:
//
//	uncached --load ok-------> resolved   (dependency list cached)
//	uncached --POM absent----> notFound   (absence cached)
//	uncached --other failure-> uncached   (nothing cached; next call retries)
//
// resolved and notFound are terminal until [Resolver.Clear]; both are
// answered from memory without I/O. Callers always receive their own copy of
// the dependency list.
//
// A Resolver is safe for concurrent use. By default two goroutines asking
// for the same uncached artifact may both fetch it; both store the same
// result. [Options.SingleFlight] collapses such calls into one fetch whose
// context is the first caller's.
package resolver

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/observability"
	"github.com/matzehuels/jarscope/pkg/pom"
)

// Loader loads a POM. It must report a missing document as POM_NOT_FOUND.
// pom.Loader implements it.
type Loader interface {
	Load(ctx context.Context, a artifact.Artifact) (*pom.Project, error)
}

// DependencyResolver is implemented by [Resolver] and by test doubles.
type DependencyResolver interface {
	GetDependencies(ctx context.Context, a artifact.Artifact) ([]artifact.Dependency, error)
}

// Options configures a [Resolver].
type Options struct {
	// SingleFlight deduplicates concurrent resolutions of the same artifact.
	SingleFlight bool
	Logger       *log.Logger
}

type outcome uint8

const (
	resolved outcome = iota + 1
	notFound
)

// entry is a memoized outcome. deps is only meaningful when kind is resolved.
type entry struct {
	kind outcome
	deps []artifact.Dependency
}

// Resolver implements [DependencyResolver] on top of a [Loader].
type Resolver struct {
	loader Loader
	logger *log.Logger
	flight *singleflight.Group

	mu    sync.RWMutex
	cache map[artifact.Artifact]entry
}

// New creates a Resolver reading POMs through loader.
func New(loader Loader, opts Options) *Resolver {
	r := &Resolver{
		loader: loader,
		logger: opts.Logger,
		cache:  make(map[artifact.Artifact]entry),
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if opts.SingleFlight {
		r.flight = &singleflight.Group{}
	}
	return r
}

// GetDependencies returns the direct dependencies declared by a's POM, in
// document order. a's packaging is ignored.
//
// A missing POM fails with POM_NOT_FOUND, now and on every later call. Any
// other failure is returned as a RESOLVER error wrapping the cause and is
// not remembered.
func (r *Resolver) GetDependencies(ctx context.Context, a artifact.Artifact) ([]artifact.Dependency, error) {
	key := a.POM()
	hooks := observability.Cache()

	if e, ok := r.lookup(key); ok {
		hooks.OnCacheHit(ctx, "resolution")
		return e.result(key)
	}
	hooks.OnCacheMiss(ctx, "resolution")

	if r.flight == nil {
		e, err := r.resolve(ctx, key)
		if err != nil {
			return nil, err
		}
		return e.result(key)
	}

	v, err, shared := r.flight.Do(key.Coordinates(), func() (any, error) {
		return r.resolve(ctx, key)
	})
	if shared {
		r.logger.Debug("shared in-flight resolution", "artifact", key)
	}
	if err != nil {
		return nil, err
	}
	return v.(entry).result(key)
}

// Len returns the number of memoized artifacts, absences included.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// Clear forgets every memoized outcome.
func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

func (r *Resolver) lookup(key artifact.Artifact) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.cache[key]
	return e, ok
}

// store records e unless an outcome is already present, and returns the
// outcome that ends up cached.
func (r *Resolver) store(key artifact.Artifact, e entry) entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.cache[key]; ok {
		return prev
	}
	r.cache[key] = e
	return e
}

// resolve loads and evaluates key's POM. The returned error is only
// non-nil for failures that are not memoized.
func (r *Resolver) resolve(ctx context.Context, key artifact.Artifact) (entry, error) {
	if e, ok := r.lookup(key); ok {
		return e, nil
	}

	hooks := observability.Resolve()
	coords := key.Coordinates()
	hooks.OnResolveStart(ctx, coords)
	start := time.Now()

	p, err := r.loader.Load(ctx, key)
	if err != nil {
		hooks.OnResolveComplete(ctx, coords, 0, time.Since(start), err)
		if errors.Is(err, errors.ErrCodePomNotFound) {
			r.logger.Debug("POM absent, remembering", "artifact", key)
			return r.store(key, entry{kind: notFound}), nil
		}
		r.logger.Debug("resolution failed", "artifact", key, "err", err)
		return entry{}, errors.Wrap(errors.ErrCodeResolver, err, "resolve %s", key)
	}

	deps := pom.Evaluate(p)
	hooks.OnResolveComplete(ctx, coords, len(deps), time.Since(start), nil)
	r.logger.Debug("resolved", "artifact", key, "dependencies", len(deps))
	return r.store(key, entry{kind: resolved, deps: deps}), nil
}

func (e entry) result(key artifact.Artifact) ([]artifact.Dependency, error) {
	if e.kind == notFound {
		return nil, errors.New(errors.ErrCodePomNotFound, "no POM for %s", key)
	}
	return slices.Clone(e.deps), nil
}
