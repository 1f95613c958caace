package finder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// sha1("hello world")
const helloSHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

func TestSum(t *testing.T) {
	sum, err := Sum(strings.NewReader("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Hex() != helloSHA1 {
		t.Errorf("Hex() = %s, want %s", sum.Hex(), helloSHA1)
	}
}

func TestSumFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.jar")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}
	sum, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile() error: %v", err)
	}
	if sum.String() != helloSHA1 {
		t.Errorf("SumFile() = %s, want %s", sum, helloSHA1)
	}

	if _, err := SumFile(filepath.Join(t.TempDir(), "missing.jar")); err == nil {
		t.Error("SumFile() of a missing file should fail")
	}
}

func TestParseChecksum(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{helloSHA1, false},
		{strings.ToUpper(helloSHA1), false},
		{" " + helloSHA1 + "\n", false},
		{"", true},
		{helloSHA1[:39], true},
		{"zz" + helloSHA1[2:], true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChecksum(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChecksum(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidChecksum) {
					t.Errorf("error code = %v, want INVALID_CHECKSUM", errors.GetCode(err))
				}
				return
			}
			if got.Hex() != helloSHA1 {
				t.Errorf("ParseChecksum(%q) = %s", tt.in, got)
			}
		})
	}
}
