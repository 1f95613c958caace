// Package tiered implements the consistency policy shared by the checksum
// finder and the content repository: a near local tier in front of a remote
// origin, with four modes governing which tiers are consulted and whether
// remote results are written back.
package tiered

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/observability"
)

// Source is a read-only tier. A miss is ok=false with a nil error.
type Source interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(ctx context.Context, key string) ([]byte, bool, error)

func (f SourceFunc) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return f(ctx, key)
}

// Store is a writable local tier. store.Store satisfies it.
type Store interface {
	Source
	Set(ctx context.Context, key string, data []byte) error
}

// Lookup reads a key through a local and a remote tier according to Mode.
// A nil tier behaves as a permanent miss.
type Lookup struct {
	Mode   Mode
	Local  Store
	Remote Source
	// Name labels cache hook events ("checksum", "repository").
	Name   string
	Logger *log.Logger
}

// Get returns the data for key. Errors from either tier are returned
// unchanged for the caller to classify. A failed write-back is logged and
// reported to the cache hooks' OnCacheError, but does not fail the lookup.
func (l *Lookup) Get(ctx context.Context, key string) ([]byte, bool, error) {
	hooks := observability.Cache()

	if l.Mode.UsesLocal() && l.Local != nil {
		data, ok, err := l.Local.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if ok {
			hooks.OnCacheHit(ctx, l.Name)
			l.logger().Debug("local hit", "tier", l.Name, "key", key)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, l.Name)
	}

	if !l.Mode.UsesRemote() || l.Remote == nil {
		return nil, false, nil
	}

	data, ok, err := l.Remote.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	l.logger().Debug("remote hit", "tier", l.Name, "key", key, "bytes", len(data))

	if l.Mode.WritesBack() && l.Local != nil {
		if err := l.Local.Set(ctx, key, data); err != nil {
			hooks.OnCacheError(ctx, l.Name, err)
			l.logger().Warn("write-back failed", "tier", l.Name, "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, l.Name, len(data))
		}
	}
	return data, true, nil
}

func (l *Lookup) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}
