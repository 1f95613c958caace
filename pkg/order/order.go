// Package order arranges a dependency list for display relative to the
// artifact being analyzed.
//
// Dependencies are placed in fixed numeric bands by their relation to the
// root's groupId; lower ranks sort first:
//
//	same groupId                   1000 - shared artifactId tokens
//	ancestor groupId (org.apache)  2000
//	descendant groupId             3000
//	anything else                  4000
//
// ArtifactIds are split into tokens on '-' and '.', and the shared token
// count is the length of the common leading run, so for the root
// commons-lang, commons-lang-i8n (2 shared) ranks ahead of commons-lang3
// (1 shared). Equal ranks fall back to [artifact.CompareDependencies].
package order

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/jarscope/pkg/artifact"
)

// Rank bands.
const (
	BandSameGroup  = 1000
	BandAncestor   = 2000
	BandDescendant = 3000
	BandOther      = 4000
)

// Rank returns d's rank relative to root.
func Rank(root artifact.Artifact, d artifact.Dependency) int {
	switch {
	case d.GroupID == root.GroupID:
		shared := sharedTokens(root.ArtifactID, d.ArtifactID)
		return BandSameGroup - min(shared, BandSameGroup-1)
	case isAncestor(d.GroupID, root.GroupID):
		return BandAncestor
	case isAncestor(root.GroupID, d.GroupID):
		return BandDescendant
	default:
		return BandOther
	}
}

// Smart returns a comparison function ordering dependencies by [Rank]
// against root, then by their natural order.
func Smart(root artifact.Artifact) func(a, b artifact.Dependency) int {
	return func(a, b artifact.Dependency) int {
		if c := cmp.Compare(Rank(root, a), Rank(root, b)); c != 0 {
			return c
		}
		return artifact.CompareDependencies(a, b)
	}
}

// Sort orders deps in place with [Smart].
func Sort(root artifact.Artifact, deps []artifact.Dependency) {
	slices.SortStableFunc(deps, Smart(root))
}

// isAncestor reports whether group is a strict dot-prefix of other:
// "org.apache" is an ancestor of "org.apache.commons" but not of
// "org.apachex".
func isAncestor(group, other string) bool {
	return len(other) > len(group) &&
		strings.HasPrefix(other, group) &&
		other[len(group)] == '.'
}

func sharedTokens(a, b string) int {
	ta, tb := tokens(a), tokens(b)
	n := 0
	for n < len(ta) && n < len(tb) && ta[n] == tb[n] {
		n++
	}
	return n
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '.' })
}
