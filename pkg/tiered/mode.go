package tiered

import (
	"strings"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// Mode selects which tiers a [Lookup] consults.
type Mode int

const (
	// LocalOnly consults the local tier only. The remote is never contacted.
	LocalOnly Mode = iota
	// RemoteOnly consults the remote tier only.
	RemoteOnly
	// LocalRemote tries local first and falls back to remote without
	// persisting what the remote returned.
	LocalRemote
	// LocalRemoteUpdate is LocalRemote plus a write-back of remote hits into
	// the local tier.
	LocalRemoteUpdate
)

var modeNames = [...]string{
	LocalOnly:         "local",
	RemoteOnly:        "remote",
	LocalRemote:       "local-remote",
	LocalRemoteUpdate: "local-remote-update",
}

// Modes lists every mode name, for flag help and validation messages.
func Modes() []string { return modeNames[:] }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode reads a mode name. Matching ignores case and accepts '_' for '-'.
func ParseMode(s string) (Mode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range modeNames {
		if name == norm {
			return Mode(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig,
		"unknown consistency mode %q (expected one of %s)", s, strings.Join(modeNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler, so modes can be read
// directly from TOML and JSON.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UsesLocal reports whether m reads the local tier.
func (m Mode) UsesLocal() bool { return m != RemoteOnly }

// UsesRemote reports whether m may contact the remote tier.
func (m Mode) UsesRemote() bool { return m != LocalOnly }

// WritesBack reports whether remote hits are persisted locally.
func (m Mode) WritesBack() bool { return m == LocalRemoteUpdate }

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool { return m >= 0 && int(m) < len(modeNames) }
