package artifact

import (
	"strings"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// DefaultPackaging is assumed when coordinates omit the packaging.
const DefaultPackaging = "jar"

// PackagingPOM is the packaging of a project's POM document.
const PackagingPOM = "pom"

// Artifact is a Maven coordinate.
//
// Identity is the full 4-tuple, so two Artifacts are equal exactly when ==
// holds. Version may still hold an unevaluated "${...}" placeholder when the
// Artifact was built from a raw POM entry.
type Artifact struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
	Packaging  string `json:"packaging"`
}

// New validates and builds an Artifact. groupID and artifactID must be
// non-empty and safe to embed in a repository path. An empty packaging
// defaults to [DefaultPackaging].
func New(groupID, artifactID, version, packaging string) (Artifact, error) {
	if err := errors.ValidateCoordinatePart("groupId", groupID); err != nil {
		return Artifact{}, err
	}
	if err := errors.ValidateCoordinatePart("artifactId", artifactID); err != nil {
		return Artifact{}, err
	}
	if version != "" {
		if err := errors.ValidateCoordinatePart("version", version); err != nil {
			return Artifact{}, err
		}
	}
	if packaging == "" {
		packaging = DefaultPackaging
	} else if err := errors.ValidateCoordinatePart("packaging", packaging); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Packaging:  packaging,
	}, nil
}

// Parse reads "groupId:artifactId:version[:packaging]".
func Parse(coords string) (Artifact, error) {
	parts := strings.Split(strings.TrimSpace(coords), ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Artifact{}, errors.New(errors.ErrCodeInvalidCoordinates,
			"invalid coordinates %q (expected groupId:artifactId:version[:packaging])", coords)
	}
	if parts[2] == "" {
		return Artifact{}, errors.New(errors.ErrCodeInvalidCoordinates,
			"invalid coordinates %q: version cannot be empty", coords)
	}
	packaging := ""
	if len(parts) == 4 {
		if parts[3] == "" {
			return Artifact{}, errors.New(errors.ErrCodeInvalidCoordinates,
				"invalid coordinates %q: packaging cannot be empty", coords)
		}
		packaging = parts[3]
	}
	return New(parts[0], parts[1], parts[2], packaging)
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(coords string) Artifact {
	a, err := Parse(coords)
	if err != nil {
		panic(err)
	}
	return a
}

// Coordinates renders "groupId:artifactId:version", appending ":packaging"
// unless the packaging is the default "jar". Parse(a.Coordinates()) == a.
func (a Artifact) Coordinates() string {
	s := a.GroupID + ":" + a.ArtifactID + ":" + a.Version
	if a.Packaging != "" && a.Packaging != DefaultPackaging {
		s += ":" + a.Packaging
	}
	return s
}

// String implements fmt.Stringer.
func (a Artifact) String() string { return a.Coordinates() }

// WithPackaging returns a copy of a with the given packaging.
func (a Artifact) WithPackaging(packaging string) Artifact {
	a.Packaging = packaging
	return a
}

// POM returns the coordinate of a's POM document.
func (a Artifact) POM() Artifact { return a.WithPackaging(PackagingPOM) }

// packagingLayout maps a packaging to the file classifier and extension used
// in repository paths.
var packagingLayout = map[string]struct{ classifier, ext string }{
	"pom":          {"", "pom"},
	"jar":          {"", "jar"},
	"bundle":       {"", "jar"},
	"maven-plugin": {"", "jar"},
	"ejb":          {"", "jar"},
	"war":          {"", "war"},
	"ear":          {"", "ear"},
	"aar":          {"", "aar"},
	"test-jar":     {"tests", "jar"},
	"javadoc":      {"javadoc", "jar"},
	"sources":      {"sources", "jar"},
}

// RepositoryPath returns the path of a's file relative to a Maven repository
// root:
//
//	group/with/slashes/artifactId/version/artifactId-version[-classifier].ext
func (a Artifact) RepositoryPath() string {
	layout, ok := packagingLayout[a.Packaging]
	if !ok {
		layout.ext = a.Packaging
		if layout.ext == "" {
			layout.ext = DefaultPackaging
		}
	}

	file := a.ArtifactID + "-" + a.Version
	if layout.classifier != "" {
		file += "-" + layout.classifier
	}
	file += "." + layout.ext

	return strings.Join([]string{
		strings.ReplaceAll(a.GroupID, ".", "/"),
		a.ArtifactID,
		a.Version,
		file,
	}, "/")
}

// Compare orders artifacts by groupId, artifactId, semantic version and
// finally packaging.
func Compare(a, b Artifact) int {
	if c := strings.Compare(a.GroupID, b.GroupID); c != 0 {
		return c
	}
	if c := strings.Compare(a.ArtifactID, b.ArtifactID); c != 0 {
		return c
	}
	if c := CompareVersions(a.Version, b.Version); c != 0 {
		return c
	}
	return strings.Compare(a.Packaging, b.Packaging)
}
