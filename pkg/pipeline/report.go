package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/finder"
)

// Status classifies an audit report.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusUnknown  Status = "unknown"
	StatusNoPOM    Status = "no-pom"
	StatusFailed   Status = "failed"
)

// Report is the audit outcome for one archive.
type Report struct {
	Path         string                `json:"path"`
	Checksum     finder.Checksum       `json:"sha1"`
	Status       Status                `json:"status"`
	Artifact     *artifact.Artifact    `json:"artifact,omitempty"`
	Candidates   []artifact.Artifact   `json:"candidates,omitempty"`
	Dependencies []artifact.Dependency `json:"dependencies,omitempty"`
	Error        string                `json:"error,omitempty"`
	Code         errors.Code           `json:"code,omitempty"`
	Duration     time.Duration         `json:"duration"`
	Err          error                 `json:"-"`
}

func (rep *Report) fail(err error) {
	rep.Status = StatusFailed
	rep.Err = err
	rep.Error = err.Error()
	rep.Code = errors.GetCode(err)
}

// Summary counts reports by status.
type Summary map[Status]int

// Summarize tallies reports.
func Summarize(reports []Report) Summary {
	s := Summary{}
	for _, r := range reports {
		s[r.Status]++
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d resolved, %d unknown, %d without POM, %d failed",
		s[StatusResolved], s[StatusUnknown], s[StatusNoPOM], s[StatusFailed])
}
