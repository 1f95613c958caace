package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/errors"
)

var sample = Result{
	Artifact: artifact.MustParse("org.example:app:1.0"),
	Dependencies: []artifact.Dependency{
		{GroupID: "org.example", ArtifactID: "core", Version: "1.0"},
		{GroupID: "com.google.guava", ArtifactID: "guava", Version: "33.0.0-jre", Optional: true},
		{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2", Scope: artifact.ScopeTest},
	},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"JSON", FormatJSON},
		{" dot ", FormatDOT},
		{"Svg", FormatSVG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(pdf) err = %v", err)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sample); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"org.example:app:1.0",
		"├── org.example:core:1.0",
		"├── com.google.guava:guava:33.0.0-jre (optional)",
		"└── junit:junit:4.13.2 [test]",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestTextNoDependencies(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, Result{Artifact: sample.Artifact}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "org.example:app:1.0\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, Result{Artifact: sample.Artifact}); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Artifact     map[string]string `json:"artifact"`
		Dependencies []any             `json:"dependencies"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Artifact["artifactId"] != "app" {
		t.Errorf("artifact = %v", got.Artifact)
	}
	if got.Dependencies == nil || len(got.Dependencies) != 0 {
		t.Errorf("dependencies = %#v, want []", got.Dependencies)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample)

	for _, want := range []string{
		"digraph G {",
		`"org.example:app:1.0" -> "org.example:core:1.0";`,
		`"org.example:app:1.0" -> "junit:junit:4.13.2" [label="test", style="dashed"];`,
		`"org.example:app:1.0" -> "com.google.guava:guava:33.0.0-jre" [style="dotted"];`,
		`fillcolor="#dbeafe"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatDOT, sample); err != nil {
		t.Fatal(err)
	}
	if buf.String() != ToDOT(sample) {
		t.Error("Write(dot) differs from ToDOT")
	}
	if err := Write(&buf, Format("bmp"), sample); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown format err = %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.25 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.25 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sample))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "guava") {
		t.Errorf("unexpected SVG output:\n%s", s)
	}
}
