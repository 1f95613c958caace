package finder

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// Checksum is the SHA-1 digest of an archive's bytes, the key Maven Central
// indexes artifacts by.
type Checksum [sha1.Size]byte

// Hex returns the lower-case hexadecimal form.
func (c Checksum) Hex() string { return hex.EncodeToString(c[:]) }

func (c Checksum) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Checksum) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Checksum) UnmarshalText(b []byte) error {
	v, err := ParseChecksum(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseChecksum reads a 40-character hexadecimal SHA-1, in either case.
func ParseChecksum(s string) (Checksum, error) {
	var c Checksum
	s = strings.TrimSpace(s)
	if len(s) != 2*sha1.Size {
		return c, errors.New(errors.ErrCodeInvalidChecksum,
			"checksum %q must be %d hex characters", s, 2*sha1.Size)
	}
	if _, err := hex.Decode(c[:], []byte(strings.ToLower(s))); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidChecksum, err, "checksum %q", s)
	}
	return c, nil
}

// Sum reads r to EOF and returns its checksum.
func Sum(r io.Reader) (Checksum, error) {
	var c Checksum
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return c, err
	}
	copy(c[:], h.Sum(nil))
	return c, nil
}

// SumFile returns the checksum of the file at path.
func SumFile(path string) (Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checksum{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Sum(f)
	if err != nil {
		return Checksum{}, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}
