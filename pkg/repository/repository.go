// Package repository downloads artifact files (POMs and archives) from a
// Maven repository, with a local directory acting as the near tier.
//
// Files live at [artifact.Artifact.RepositoryPath] both remotely
// (<base>/<path>) and locally (<root>/<path>), so a local root of
// ~/.m2/repository reuses whatever Maven itself has already downloaded.
package repository

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/httputil"
	"github.com/matzehuels/jarscope/pkg/store"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

// DefaultBaseURL is Maven Central.
const DefaultBaseURL = "https://repo1.maven.org/maven2"

// Downloader is implemented by anything that can fetch artifact bytes.
// ok=false means the artifact does not exist at the source.
type Downloader interface {
	Download(ctx context.Context, a artifact.Artifact) ([]byte, bool, error)
}

// Config configures a [Client].
type Config struct {
	Mode tiered.Mode
	// BaseURL is the remote repository root. Empty selects [DefaultBaseURL].
	BaseURL string
	// Local is the local repository. Nil disables the local tier.
	Local  *store.FileStore
	HTTP   *httputil.Client
	Logger *log.Logger
}

// Client implements [Downloader] against a local directory and a remote
// repository.
type Client struct {
	mode    tiered.Mode
	baseURL string
	local   *store.FileStore
	http    *httputil.Client
	logger  *log.Logger
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	if cfg.HTTP == nil {
		cfg.HTTP = httputil.NewClient(httputil.DefaultTimeout)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Client{
		mode:    cfg.Mode,
		baseURL: base,
		local:   cfg.Local,
		http:    cfg.HTTP,
		logger:  cfg.Logger,
	}, nil
}

// Mode returns the consistency mode in effect.
func (c *Client) Mode() tiered.Mode { return c.mode }

// URL returns the remote location of a.
func (c *Client) URL(a artifact.Artifact) string {
	return c.baseURL + "/" + a.RepositoryPath()
}

// Download returns the bytes of a's file. A 404 or a missing local file is
// reported as ok=false. Other HTTP statuses and I/O failures are
// REPOSITORY_ACCESS errors. In [tiered.LocalRemoteUpdate] mode remote hits
// are written to the local repository atomically before being returned.
func (c *Client) Download(ctx context.Context, a artifact.Artifact) ([]byte, bool, error) {
	lookup := tiered.Lookup{
		Mode:   c.mode,
		Remote: tiered.SourceFunc(c.fetch),
		Name:   "repository",
		Logger: c.logger,
	}
	if c.local != nil {
		lookup.Local = localRepo{c.local}
	}

	data, ok, err := lookup.Get(ctx, a.RepositoryPath())
	if err != nil {
		if errors.Is(err, errors.ErrCodeRepositoryAccess) {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeRepositoryAccess, err, "download %s", a)
	}
	if !ok {
		c.logger.Debug("artifact absent", "artifact", a, "mode", c.mode)
	}
	return data, ok, nil
}

// DownloadPOM downloads the POM of a, whatever a's packaging.
func (c *Client) DownloadPOM(ctx context.Context, a artifact.Artifact) ([]byte, bool, error) {
	return c.Download(ctx, a.POM())
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, bool, error) {
	url := c.baseURL + "/" + path
	data, ok, err := c.http.Fetch(ctx, url)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRepositoryAccess, err, "GET %s", url).
			WithStatus(httputil.StatusCode(err))
	}
	return data, ok, nil
}

// localRepo tags local I/O failures with REPOSITORY_ACCESS.
type localRepo struct{ fs *store.FileStore }

func (l localRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := l.fs.Get(ctx, key)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRepositoryAccess, err, "read local repository")
	}
	return data, ok, nil
}

func (l localRepo) Set(ctx context.Context, key string, data []byte) error {
	return l.fs.Set(ctx, key, data)
}
