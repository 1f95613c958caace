package pom

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
)

// Fetcher downloads artifact bytes. ok=false means the file does not exist.
// repository.Client implements it.
type Fetcher interface {
	Download(ctx context.Context, a artifact.Artifact) ([]byte, bool, error)
}

// Loader fetches and parses POMs.
type Loader struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewLoader creates a Loader reading through f. A nil logger uses
// log.Default().
func NewLoader(f Fetcher, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{fetcher: f, logger: logger}
}

// Load returns the parsed POM of a; a's packaging is ignored. It fails with
// POM_NOT_FOUND when the document does not exist, POM_PARSE when it is
// malformed, and passes fetch errors through (REPOSITORY_ACCESS from a
// repository.Client).
func (l *Loader) Load(ctx context.Context, a artifact.Artifact) (*Project, error) {
	a = a.POM()
	data, ok, err := l.fetcher.Download(ctx, a)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRepositoryAccess, err, "download %s", a)
		}
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodePomNotFound, "no POM for %s", a)
	}

	p, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePomParse, err, "POM of %s", a)
	}
	l.logger.Debug("loaded POM", "artifact", a, "dependencies", len(p.Dependencies), "properties", len(p.Properties))
	return p, nil
}
