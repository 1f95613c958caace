package artifact

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// Scope is the declared usage context of a dependency. The constants are in
// their natural sort order.
type Scope int

const (
	ScopeCompile Scope = iota
	ScopeProvided
	ScopeRuntime
	ScopeTest
	ScopeSystem
	ScopeImport
)

var scopeNames = [...]string{
	ScopeCompile:  "compile",
	ScopeProvided: "provided",
	ScopeRuntime:  "runtime",
	ScopeTest:     "test",
	ScopeSystem:   "system",
	ScopeImport:   "import",
}

// String returns the lower-case POM spelling of s.
func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return fmt.Sprintf("Scope(%d)", int(s))
	}
	return scopeNames[s]
}

// ParseScope reads a POM <scope> value. The empty string is compile scope.
func ParseScope(s string) (Scope, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ScopeCompile, nil
	}
	for i, name := range scopeNames {
		if name == s {
			return Scope(i), nil
		}
	}
	return ScopeCompile, errors.New(errors.ErrCodeInvalidInput, "unknown dependency scope %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(b []byte) error {
	v, err := ParseScope(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Dependency is one evaluated <dependency> entry of a POM.
//
// Dependencies are only built once property evaluation is complete, so the
// Version is final; it may still contain a "${...}" placeholder if the
// property could not be resolved.
type Dependency struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
	Scope      Scope  `json:"scope"`
	Optional   bool   `json:"optional,omitempty"`
}

// String renders "groupId:artifactId:version" followed by the scope and an
// "(optional)" marker where they differ from the defaults.
func (d Dependency) String() string {
	s := d.GroupID + ":" + d.ArtifactID + ":" + d.Version
	if d.Scope != ScopeCompile {
		s += " [" + d.Scope.String() + "]"
	}
	if d.Optional {
		s += " (optional)"
	}
	return s
}

// Artifact returns the jar artifact the dependency refers to.
func (d Dependency) Artifact() Artifact {
	return Artifact{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Packaging:  DefaultPackaging,
	}
}

// Unresolved reports whether any coordinate field still holds a placeholder.
func (d Dependency) Unresolved() bool {
	return strings.Contains(d.GroupID, "${") ||
		strings.Contains(d.ArtifactID, "${") ||
		strings.Contains(d.Version, "${")
}

// CompareDependencies orders by groupId, artifactId, semantic version, scope
// and optional (false first).
func CompareDependencies(a, b Dependency) int {
	if c := strings.Compare(a.GroupID, b.GroupID); c != 0 {
		return c
	}
	if c := strings.Compare(a.ArtifactID, b.ArtifactID); c != 0 {
		return c
	}
	if c := CompareVersions(a.Version, b.Version); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Scope, b.Scope); c != 0 {
		return c
	}
	switch {
	case a.Optional == b.Optional:
		return 0
	case a.Optional:
		return 1
	default:
		return -1
	}
}
