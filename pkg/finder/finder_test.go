package finder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/httputil"
	"github.com/matzehuels/jarscope/pkg/store"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

const solrBody = `{
  "responseHeader": {"status": 0},
  "response": {
    "numFound": 2,
    "docs": [
      {"id": "org.apache.commons:commons-lang3:3.12.0", "g": "org.apache.commons", "a": "commons-lang3", "v": "3.12.0", "p": "jar"},
      {"id": "bad", "g": "", "a": "broken", "v": "1.0", "p": "jar"}
    ]
  }
}`

type searchServer struct {
	*httptest.Server
	calls atomic.Int32
	query atomic.Value
}

func newSearchServer(t *testing.T, status int, body string) *searchServer {
	t.Helper()
	s := &searchServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.query.Store(r.URL.Query().Get("checksum"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func newFinder(t *testing.T, mode tiered.Mode, srv *searchServer, local store.Store) *Finder {
	t.Helper()
	f, err := New(Config{
		Mode:        mode,
		URLTemplate: srv.URL + "/search?checksum=" + Placeholder,
		Local:       local,
		HTTP:        httputil.NewClient(time.Second),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return f
}

func mustSum(t *testing.T) Checksum {
	t.Helper()
	sum, err := ParseChecksum(helloSHA1)
	if err != nil {
		t.Fatal(err)
	}
	return sum
}

func TestFindArtifactsCoordinateList(t *testing.T) {
	srv := newSearchServer(t, http.StatusOK,
		`["org.b:b:1.0", "org.a:a:2.0", "not-a-coordinate", "org.a:a:2.0"]`)
	f := newFinder(t, tiered.RemoteOnly, srv, nil)

	got, err := f.FindArtifacts(context.Background(), mustSum(t))
	if err != nil {
		t.Fatalf("FindArtifacts() error: %v", err)
	}
	want := []artifact.Artifact{artifact.MustParse("org.a:a:2.0"), artifact.MustParse("org.b:b:1.0")}
	if len(got) != len(want) {
		t.Fatalf("FindArtifacts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if q, _ := srv.query.Load().(string); q != helloSHA1 {
		t.Errorf("remote saw checksum %q, want %q", q, helloSHA1)
	}
}

func TestFindArtifactsSolrDocument(t *testing.T) {
	srv := newSearchServer(t, http.StatusOK, solrBody)
	f := newFinder(t, tiered.RemoteOnly, srv, nil)

	got, err := f.FindArtifacts(context.Background(), mustSum(t))
	if err != nil {
		t.Fatalf("FindArtifacts() error: %v", err)
	}
	if len(got) != 1 || got[0] != artifact.MustParse("org.apache.commons:commons-lang3:3.12.0") {
		t.Errorf("FindArtifacts() = %v", got)
	}
}

func TestFindArtifactsRemoteStatuses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
	}{
		{name: "empty list", status: http.StatusOK, body: `[]`},
		{name: "not found", status: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true, wantStatus: 500},
		{name: "forbidden", status: http.StatusForbidden, wantErr: true, wantStatus: 403},
		{name: "garbage body", status: http.StatusOK, body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSearchServer(t, tt.status, tt.body)
			local, _ := store.NewFileStore(t.TempDir())
			f := newFinder(t, tiered.LocalRemoteUpdate, srv, local)

			got, err := f.FindArtifacts(context.Background(), mustSum(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindArtifacts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != 0 {
				t.Errorf("FindArtifacts() = %v, want none", got)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeLookup) {
					t.Errorf("error code = %v, want LOOKUP_FAILED", errors.GetCode(err))
				}
				if got := errors.GetStatus(err); got != tt.wantStatus {
					t.Errorf("status = %d, want %d", got, tt.wantStatus)
				}
				// Failures are never persisted.
				if _, ok, _ := local.Get(context.Background(), Key(mustSum(t))); ok {
					t.Error("failed lookup was written to the local store")
				}
			}
		})
	}
}

func TestFindArtifactsLocalOnlyNeverCallsRemote(t *testing.T) {
	srv := newSearchServer(t, http.StatusOK, `["g:a:1"]`)
	local, _ := store.NewFileStore(t.TempDir())
	f := newFinder(t, tiered.LocalOnly, srv, local)

	got, err := f.FindArtifacts(context.Background(), mustSum(t))
	if err != nil || len(got) != 0 {
		t.Fatalf("FindArtifacts() = %v, %v; want empty", got, err)
	}
	if n := srv.calls.Load(); n != 0 {
		t.Errorf("remote called %d times in LocalOnly mode", n)
	}
}

func TestFindArtifactsWriteBackThenLocalOnly(t *testing.T) {
	ctx := context.Background()
	srv := newSearchServer(t, http.StatusOK, `["g:a:1"]`)
	local, _ := store.NewFileStore(t.TempDir())

	update := newFinder(t, tiered.LocalRemoteUpdate, srv, local)
	if got, err := update.FindArtifacts(ctx, mustSum(t)); err != nil || len(got) != 1 {
		t.Fatalf("LocalRemoteUpdate FindArtifacts() = %v, %v", got, err)
	}

	offline := newFinder(t, tiered.LocalOnly, srv, local)
	got, err := offline.FindArtifacts(ctx, mustSum(t))
	if err != nil || len(got) != 1 || got[0] != artifact.MustParse("g:a:1") {
		t.Fatalf("LocalOnly FindArtifacts() = %v, %v", got, err)
	}
	if n := srv.calls.Load(); n != 1 {
		t.Errorf("remote called %d times, want 1", n)
	}
}

func TestFindArtifactsLocalRemoteDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	srv := newSearchServer(t, http.StatusOK, `["g:a:1"]`)
	local, _ := store.NewFileStore(t.TempDir())
	f := newFinder(t, tiered.LocalRemote, srv, local)

	for range 2 {
		if got, err := f.FindArtifacts(ctx, mustSum(t)); err != nil || len(got) != 1 {
			t.Fatalf("FindArtifacts() = %v, %v", got, err)
		}
	}
	if n := srv.calls.Load(); n != 2 {
		t.Errorf("remote called %d times, want 2", n)
	}
	if _, ok, _ := local.Get(ctx, Key(mustSum(t))); ok {
		t.Error("LocalRemote wrote to the local store")
	}
}

func TestFindArtifactsCorruptLocalEntry(t *testing.T) {
	ctx := context.Background()
	srv := newSearchServer(t, http.StatusOK, `["g:a:1"]`)
	local, _ := store.NewFileStore(t.TempDir())
	if err := local.Set(ctx, Key(mustSum(t)), []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	f := newFinder(t, tiered.LocalRemoteUpdate, srv, local)
	got, err := f.FindArtifacts(ctx, mustSum(t))
	if err != nil || len(got) != 1 {
		t.Fatalf("FindArtifacts() = %v, %v", got, err)
	}
	data, ok, _ := local.Get(ctx, Key(mustSum(t)))
	if !ok || !strings.Contains(string(data), "g:a:1") {
		t.Errorf("corrupt entry not replaced: %q", data)
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		tmpl    string
		wantErr bool
	}{
		{DefaultURLTemplate, false},
		{"https://example.com/search?checksum={checksum}", false},
		{"https://example.com/search", true},
		{"https://example.com/{checksum}/{checksum}", true},
		{"ftp://example.com/{checksum}", true},
	}
	for _, tt := range tests {
		if err := ValidateTemplate(tt.tmpl); (err != nil) != tt.wantErr {
			t.Errorf("ValidateTemplate(%q) error = %v, wantErr %v", tt.tmpl, err, tt.wantErr)
		}
	}

	if _, err := New(Config{URLTemplate: "https://example.com/"}); err == nil {
		t.Error("New() should reject a template without placeholder")
	}
}

func TestFinderURL(t *testing.T) {
	f, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	want := `https://search.maven.org/solrsearch/select?q=1:%22` + helloSHA1 + `%22&rows=20&wt=json`
	if got := f.URL(mustSum(t)); got != want {
		t.Errorf("URL() = %s, want %s", got, want)
	}
}

func TestDecodeDeduplicatesEquivalentVersions(t *testing.T) {
	got, err := decode([]byte(`["g:a:1.0", "g:a:1.0.0", "g:a:1.0"]`), log.New(io.Discard))
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	want := []artifact.Artifact{artifact.MustParse("g:a:1.0"), artifact.MustParse("g:a:1.0.0")}
	if len(got) != len(want) {
		t.Fatalf("decode() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
