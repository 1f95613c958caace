// Package finder identifies archive files as Maven artifacts by their SHA-1
// checksum.
//
// A [Finder] consults a local store of cached search responses and a remote
// search service, as governed by a [tiered.Mode]. Zero results is a normal
// outcome meaning the file is unknown; it is never an error.
//
//	f, err := finder.New(finder.Config{
//	    Mode:  tiered.LocalRemoteUpdate,
//	    Local: checksumStore,
//	    HTTP:  httputil.NewClient(10 * time.Second),
//	})
//	sum, _ := finder.SumFile("lib/commons-lang3.jar")
//	candidates, err := f.FindArtifacts(ctx, sum)
package finder

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/httputil"
	"github.com/matzehuels/jarscope/pkg/store"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

// Placeholder marks where the hex checksum goes in a URL template.
const Placeholder = "{checksum}"

// DefaultURLTemplate queries Maven Central's SHA-1 index.
const DefaultURLTemplate = `https://search.maven.org/solrsearch/select?q=1:%22` + Placeholder + `%22&rows=20&wt=json`

// ArtifactFinder is implemented by anything that maps a checksum to
// candidate artifacts.
type ArtifactFinder interface {
	FindArtifacts(ctx context.Context, sum Checksum) ([]artifact.Artifact, error)
}

// Config configures a [Finder].
type Config struct {
	Mode tiered.Mode
	// URLTemplate must contain [Placeholder] exactly once. Empty selects
	// [DefaultURLTemplate].
	URLTemplate string
	// Local holds raw search responses keyed "<hex>.json". Nil disables
	// the local tier.
	Local store.Store
	// HTTP performs remote searches. Nil selects a client with
	// [httputil.DefaultTimeout].
	HTTP   *httputil.Client
	Logger *log.Logger
}

// Finder implements [ArtifactFinder] over a local store and a remote search
// service.
type Finder struct {
	mode     tiered.Mode
	template string
	local    store.Store
	http     *httputil.Client
	logger   *log.Logger
}

// New validates cfg and builds a Finder.
func New(cfg Config) (*Finder, error) {
	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}
	if err := ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	if cfg.HTTP == nil {
		cfg.HTTP = httputil.NewClient(httputil.DefaultTimeout)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Finder{
		mode:     cfg.Mode,
		template: tmpl,
		local:    cfg.Local,
		http:     cfg.HTTP,
		logger:   cfg.Logger,
	}, nil
}

// ValidateTemplate checks that tmpl is an http(s) URL with exactly one
// [Placeholder].
func ValidateTemplate(tmpl string) error {
	if err := errors.ValidateURL(tmpl); err != nil {
		return err
	}
	if n := strings.Count(tmpl, Placeholder); n != 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"search URL template must contain %s exactly once (found %d)", Placeholder, n)
	}
	return nil
}

// Mode returns the consistency mode in effect.
func (f *Finder) Mode() tiered.Mode { return f.mode }

// FindArtifacts returns the artifacts whose archive has checksum sum, sorted
// by [artifact.Compare]. Failures of the search service are LOOKUP_FAILED
// errors carrying the HTTP status, if any; they are never cached.
func (f *Finder) FindArtifacts(ctx context.Context, sum Checksum) ([]artifact.Artifact, error) {
	lookup := tiered.Lookup{
		Mode:   f.mode,
		Remote: tiered.SourceFunc(f.search),
		Name:   "checksum",
		Logger: f.logger,
	}
	if f.local != nil {
		lookup.Local = &localIndex{store: f.local, logger: f.logger}
	}

	data, ok, err := lookup.Get(ctx, Key(sum))
	if err != nil {
		return nil, err
	}
	if !ok {
		f.logger.Debug("checksum unknown", "checksum", sum, "mode", f.mode)
		return nil, nil
	}

	found, err := decode(data, f.logger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLookup, err, "checksum %s", sum)
	}
	f.logger.Debug("checksum resolved", "checksum", sum, "candidates", len(found))
	return found, nil
}

// Key returns the store key for sum.
func Key(sum Checksum) string { return sum.Hex() + ".json" }

// URL returns the search URL for sum.
func (f *Finder) URL(sum Checksum) string {
	return strings.Replace(f.template, Placeholder, sum.Hex(), 1)
}

func (f *Finder) search(ctx context.Context, key string) ([]byte, bool, error) {
	sum, err := ParseChecksum(strings.TrimSuffix(key, ".json"))
	if err != nil {
		return nil, false, err
	}
	url := f.URL(sum)
	data, ok, err := f.http.Fetch(ctx, url)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeLookup, err, "search %s", sum).
			WithStatus(httputil.StatusCode(err))
	}
	if ok {
		// Reject garbage before the tiered lookup persists it.
		if _, err := decode(data, quiet); err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeLookup, err, "search %s", sum)
		}
	}
	return data, ok, nil
}

// localIndex adapts the checksum store to the tiered lookup. Unreadable
// entries are dropped and treated as misses.
type localIndex struct {
	store  store.Store
	logger *log.Logger
}

func (l *localIndex) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeLookup, err, "read checksum store")
	}
	if !ok {
		return nil, false, nil
	}
	if _, err := decode(data, quiet); err != nil {
		l.logger.Warn("dropping corrupt checksum entry", "key", key, "err", err)
		_ = l.store.Delete(ctx, key)
		return nil, false, nil
	}
	return data, true, nil
}

func (l *localIndex) Set(ctx context.Context, key string, data []byte) error {
	return l.store.Set(ctx, key, data)
}

// quiet swallows warnings from validation-only decodes.
var quiet = log.New(io.Discard)
