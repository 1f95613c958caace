package artifact

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// Qualifier ranks. Anything not listed sorts between snapshot and the
// release, ordered case-insensitively among itself.
const (
	rankAlpha = iota + 1
	rankBeta
	rankMilestone
	rankRC
	rankSnapshot
	rankUnknown
)

var qualifierRanks = map[string]int{
	"alpha":     rankAlpha,
	"a":         rankAlpha,
	"beta":      rankBeta,
	"b":         rankBeta,
	"milestone": rankMilestone,
	"m":         rankMilestone,
	"rc":        rankRC,
	"cr":        rankRC,
	"snapshot":  rankSnapshot,
}

// releaseAliases are trailing qualifiers that mean "the release itself".
var releaseAliases = map[string]bool{
	"":        true,
	"ga":      true,
	"final":   true,
	"release": true,
}

// segment is one numeric or alphabetic run of a version string.
// Numeric text has leading zeros stripped; alphabetic text is lower case.
type segment struct {
	numeric bool
	text    string
}

var zero = segment{numeric: true, text: "0"}

// Version is a parsed Maven version.
//
// The main part (before the first '-') and the qualifier (after it) are each
// decomposed into alternating numeric and alphabetic segments. Trailing zero
// segments and release aliases ("final", "ga", "release") are dropped, so
// "1.0" and "1.0.0.Final" compare equal.
//
// The zero value is the empty version, which compares equal to "0".
type Version struct {
	raw       string
	main      []segment
	qualifier []segment
}

// ParseVersion decomposes s. It never fails; any string is a version.
func ParseVersion(s string) Version {
	main, qual, _ := strings.Cut(s, "-")
	return Version{
		raw:       s,
		main:      canonical(tokenize(main)),
		qualifier: canonical(tokenize(qual)),
	}
}

// String returns the original version string.
func (v Version) String() string { return v.raw }

// Qualifier returns the text after the first '-' (e.g. "SNAPSHOT", "RC1").
func (v Version) Qualifier() string {
	_, q, _ := strings.Cut(v.raw, "-")
	return q
}

// IsSnapshot reports whether v is a -SNAPSHOT development version.
func (v Version) IsSnapshot() bool {
	return strings.HasSuffix(strings.ToUpper(v.raw), "SNAPSHOT")
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to,
// or after o.
func (v Version) Compare(o Version) int {
	if v.raw == o.raw {
		return 0
	}
	if c := compareSegments(v.main, o.main); c != 0 {
		return c
	}
	return compareSegments(v.qualifier, o.qualifier)
}

// CompareVersions compares two version strings. Equal strings short-circuit
// without being decomposed.
func CompareVersions(a, b string) int {
	if a == b {
		return 0
	}
	return ParseVersion(a).Compare(ParseVersion(b))
}

func tokenize(s string) []segment {
	var (
		segs []segment
		cur  strings.Builder
		num  bool
	)
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		text := cur.String()
		if num {
			text = strings.TrimLeft(text, "0")
			if text == "" {
				text = "0"
			}
		}
		segs = append(segs, segment{numeric: num, text: text})
		cur.Reset()
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !num {
				flush()
			}
			num = true
			cur.WriteRune(r)
		case unicode.IsLetter(r):
			if cur.Len() > 0 && num {
				flush()
			}
			num = false
			cur.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()
	return segs
}

// canonical drops trailing zeros and release aliases.
func canonical(segs []segment) []segment {
	for len(segs) > 0 {
		last := segs[len(segs)-1]
		if last == zero || (!last.numeric && releaseAliases[last.text]) {
			segs = segs[:len(segs)-1]
			continue
		}
		break
	}
	return slices.Clip(segs)
}

// compareSegments compares two canonical segment lists, padding the shorter
// one with numeric zeros.
func compareSegments(a, b []segment) int {
	for i := range max(len(a), len(b)) {
		sa, sb := zero, zero
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		if c := compareSegment(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

// compareSegment orders every alphabetic segment before every numeric one.
func compareSegment(a, b segment) int {
	switch {
	case a.numeric && b.numeric:
		if c := cmp.Compare(len(a.text), len(b.text)); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	}

	ra, rb := rank(a.text), rank(b.text)
	if c := cmp.Compare(ra, rb); c != 0 {
		return c
	}
	if ra == rankUnknown {
		return strings.Compare(a.text, b.text)
	}
	return 0
}

func rank(text string) int {
	if r, ok := qualifierRanks[text]; ok {
		return r
	}
	return rankUnknown
}
