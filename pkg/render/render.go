// Package render writes a resolved dependency list in the output formats the
// CLI and HTTP API offer.
//
// # Formats
//
//   - [FormatText]: an indented tree, one dependency per line
//   - [FormatJSON]: {"artifact": ..., "dependencies": [...]}
//   - [FormatDOT]: Graphviz source of the root's fan-out
//   - [FormatSVG]: the DOT graph laid out in-process with go-graphviz
//
// Dependencies are written in the order given; callers sort them with
// package order first.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatText, FormatJSON, FormatDOT, FormatSVG} }

// ParseFormat reads a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (expected text, json, dot or svg)", s)
}

// Result is a root artifact and its direct dependencies.
type Result struct {
	Artifact     artifact.Artifact     `json:"artifact"`
	Dependencies []artifact.Dependency `json:"dependencies"`
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r Result) error {
	switch f {
	case FormatText, "":
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatDOT:
		_, err := io.WriteString(w, ToDOT(r))
		return err
	case FormatSVG:
		svg, err := RenderSVG(ToDOT(r))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q", f)
	}
}

// Text writes r as a tree:
//
//	org.example:app:1.0
//	├── org.example:core:1.0
//	└── junit:junit:4.13.2 [test]
func Text(w io.Writer, r Result) error {
	if _, err := fmt.Fprintln(w, r.Artifact.Coordinates()); err != nil {
		return err
	}
	for i, d := range r.Dependencies {
		branch := "├── "
		if i == len(r.Dependencies)-1 {
			branch = "└── "
		}
		if _, err := fmt.Fprintln(w, branch+d.String()); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes r as indented JSON. A nil dependency list is written as [].
func JSON(w io.Writer, r Result) error {
	if r.Dependencies == nil {
		r.Dependencies = []artifact.Dependency{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
