package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/observability"
)

// logHooks reports resolver, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetResolveHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnResolveStart(_ context.Context, coords string) {
	h.logger.Debug("resolving", "artifact", coords)
}

func (h logHooks) OnResolveComplete(_ context.Context, coords string, depCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "artifact", coords, "duration", d, "err", err)
		return
	}
	h.logger.Debug("resolved", "artifact", coords, "dependencies", depCount, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "cache", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "cache", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "cache", keyType, "bytes", size)
}

func (h logHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache write failed", "cache", keyType, "err", err)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
