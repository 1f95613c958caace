// Package pipeline chains checksum identification, dependency resolution and
// ordering into the operations the CLI and HTTP server expose.
//
// # Usage
//
//	runner := pipeline.NewRunner(finder, resolver, logger)
//
//	id, err := runner.Identify(ctx, "lib/guava.jar")
//	deps, err := runner.Dependencies(ctx, id.Candidates[0])
//
//	// Many archives, bounded concurrency, errors recorded per report.
//	reports := runner.Audit(ctx, paths)
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/finder"
	"github.com/matzehuels/jarscope/pkg/order"
	"github.com/matzehuels/jarscope/pkg/resolver"
)

// DefaultWorkers bounds concurrent archives in [Runner.Audit].
const DefaultWorkers = 8

// Runner wires a finder and a resolver together.
//
// The Runner holds no results itself; memoization lives in the resolver.
// Multiple goroutines can safely share one Runner.
type Runner struct {
	Finder   finder.ArtifactFinder
	Resolver resolver.DependencyResolver
	Logger   *log.Logger
	// Workers bounds concurrency in Audit. Zero selects DefaultWorkers.
	Workers int
	// OnReport, if set, is called from worker goroutines as each audit
	// report completes.
	OnReport func(Report)
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(f finder.ArtifactFinder, r resolver.DependencyResolver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Finder: f, Resolver: r, Logger: logger}
}

// Identity is the outcome of identifying one archive.
type Identity struct {
	Path       string              `json:"path"`
	Checksum   finder.Checksum     `json:"sha1"`
	Candidates []artifact.Artifact `json:"candidates"`
}

// Identify checksums the file at path and looks the checksum up. An unknown
// file yields an Identity without candidates.
func (r *Runner) Identify(ctx context.Context, path string) (*Identity, error) {
	sum, err := finder.SumFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "checksum %s", path)
	}
	return r.IdentifyChecksum(ctx, path, sum)
}

// IdentifyChecksum looks up a precomputed checksum. path is informational.
func (r *Runner) IdentifyChecksum(ctx context.Context, path string, sum finder.Checksum) (*Identity, error) {
	candidates, err := r.Finder.FindArtifacts(ctx, sum)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []artifact.Artifact{}
	}
	r.logger().Debug("identified", "path", path, "sha1", sum, "candidates", len(candidates))
	return &Identity{Path: path, Checksum: sum, Candidates: candidates}, nil
}

// Dependencies resolves a's direct dependencies and orders them relative to
// a with order.Smart.
func (r *Runner) Dependencies(ctx context.Context, a artifact.Artifact) ([]artifact.Dependency, error) {
	deps, err := r.Resolver.GetDependencies(ctx, a)
	if err != nil {
		return nil, err
	}
	order.Sort(a, deps)
	return deps, nil
}

// Audit identifies every archive in paths and resolves the dependencies of
// its first candidate. Per-archive failures are recorded on the reports;
// reports are returned in input order.
func (r *Runner) Audit(ctx context.Context, paths []string) []Report {
	reports := make([]Report, len(paths))
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = r.audit(ctx, path)
			if r.OnReport != nil {
				r.OnReport(reports[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	r.logger().Info("audit complete", "archives", len(paths), "summary", Summarize(reports))
	return reports
}

func (r *Runner) audit(ctx context.Context, path string) (rep Report) {
	start := time.Now()
	rep.Path = path
	defer func() { rep.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		rep.fail(err)
		return rep
	}

	id, err := r.Identify(ctx, path)
	if err != nil {
		rep.fail(err)
		return rep
	}
	rep.Checksum = id.Checksum
	rep.Candidates = id.Candidates
	if len(id.Candidates) == 0 {
		rep.Status = StatusUnknown
		return rep
	}

	a := id.Candidates[0]
	rep.Artifact = &a
	deps, err := r.Dependencies(ctx, a)
	switch {
	case errors.Is(err, errors.ErrCodePomNotFound):
		rep.Status = StatusNoPOM
	case err != nil:
		rep.fail(err)
	default:
		rep.Status = StatusResolved
		rep.Dependencies = deps
	}
	return rep
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
