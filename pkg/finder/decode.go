package finder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarscope/pkg/artifact"
)

// searchResponse is the Maven Central solrsearch document shape.
type searchResponse struct {
	Response *struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	GroupID    string `json:"g"`
	ArtifactID string `json:"a"`
	Version    string `json:"v"`
	Packaging  string `json:"p"`
}

// decode reads a search response body. Two shapes are accepted: a JSON array
// of coordinate strings, and a solrsearch document whose docs carry g/a/v/p.
// Entries that are not valid coordinates are skipped with a warning. The
// result is sorted and free of duplicates.
func decode(data []byte, logger *log.Logger) ([]artifact.Artifact, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var found []artifact.Artifact
	seen := make(map[artifact.Artifact]bool)
	add := func(a artifact.Artifact, err error, raw string) {
		if err != nil {
			logger.Warn("skipping invalid search result", "entry", raw, "err", err)
			return
		}
		if !seen[a] {
			seen[a] = true
			found = append(found, a)
		}
	}

	switch data[0] {
	case '[':
		var coords []string
		if err := json.Unmarshal(data, &coords); err != nil {
			return nil, fmt.Errorf("decode coordinate list: %w", err)
		}
		for _, c := range coords {
			a, err := artifact.Parse(c)
			add(a, err, c)
		}
	case '{':
		var resp searchResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		if resp.Response == nil {
			return nil, fmt.Errorf("decode search response: missing \"response\" object")
		}
		for _, d := range resp.Response.Docs {
			a, err := artifact.New(d.GroupID, d.ArtifactID, d.Version, d.Packaging)
			if err == nil && a.Version == "" {
				err = fmt.Errorf("missing version")
			}
			add(a, err, d.GroupID+":"+d.ArtifactID+":"+d.Version)
		}
	default:
		return nil, fmt.Errorf("decode search response: unexpected leading %q", data[0])
	}

	// Compare treats "1.0" and "1.0.0" as equal; keep input order between them.
	slices.SortStableFunc(found, artifact.Compare)
	return found, nil
}
