package pom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// Project is a parsed POM. Values are raw: placeholders are intact.
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Parent     *Parent
	Properties map[string]string
	// Dependencies are the <dependencies> entries in document order.
	Dependencies []RawDependency
	// Managed are the <dependencyManagement> entries in document order.
	Managed []RawDependency
}

// Parent is the <parent> reference of a POM.
type Parent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// RawDependency is a <dependency> element as written.
type RawDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// EffectiveGroupID is the project's groupId, inherited from <parent> when
// the POM does not declare one.
func (p *Project) EffectiveGroupID() string {
	if p.GroupID == "" && p.Parent != nil {
		return p.Parent.GroupID
	}
	return p.GroupID
}

// EffectiveVersion is the project's version, inherited from <parent> when
// the POM does not declare one.
func (p *Project) EffectiveVersion() string {
	if p.Version == "" && p.Parent != nil {
		return p.Parent.Version
	}
	return p.Version
}

// EffectivePackaging defaults to "jar".
func (p *Project) EffectivePackaging() string {
	if p.Packaging == "" {
		return "jar"
	}
	return p.Packaging
}

type pomProject struct {
	XMLName      xml.Name        `xml:"project"`
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Packaging    string          `xml:"packaging"`
	Parent       *Parent         `xml:"parent"`
	Properties   properties      `xml:"properties"`
	Dependencies []RawDependency `xml:"dependencies>dependency"`
	Managed      []RawDependency `xml:"dependencyManagement>dependencies>dependency"`
}

// properties decodes <properties>, whose child element names are the keys.
type properties map[string]string

func (p *properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if *p == nil {
		*p = properties{}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			(*p)[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			return nil
		}
	}
}

// Parse decodes a POM document. Malformed XML, or XML whose root is not
// <project>, is a POM_PARSE error.
func Parse(data []byte) (*Project, error) {
	p, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePomParse, err, "parse POM")
	}
	return p, nil
}

func parse(data []byte) (*Project, error) {
	var raw pomProject
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	p := &Project{
		GroupID:      strings.TrimSpace(raw.GroupID),
		ArtifactID:   strings.TrimSpace(raw.ArtifactID),
		Version:      strings.TrimSpace(raw.Version),
		Packaging:    strings.TrimSpace(raw.Packaging),
		Properties:   map[string]string(raw.Properties),
		Dependencies: trimAll(raw.Dependencies),
		Managed:      trimAll(raw.Managed),
	}
	if raw.Parent != nil {
		p.Parent = &Parent{
			GroupID:    strings.TrimSpace(raw.Parent.GroupID),
			ArtifactID: strings.TrimSpace(raw.Parent.ArtifactID),
			Version:    strings.TrimSpace(raw.Parent.Version),
		}
	}
	if p.Properties == nil {
		p.Properties = map[string]string{}
	}
	return p, nil
}

func trimAll(deps []RawDependency) []RawDependency {
	for i := range deps {
		d := &deps[i]
		d.GroupID = strings.TrimSpace(d.GroupID)
		d.ArtifactID = strings.TrimSpace(d.ArtifactID)
		d.Version = strings.TrimSpace(d.Version)
		d.Type = strings.TrimSpace(d.Type)
		d.Classifier = strings.TrimSpace(d.Classifier)
		d.Scope = strings.TrimSpace(d.Scope)
		d.Optional = strings.TrimSpace(d.Optional)
	}
	return deps
}

// charsetReader handles the non-UTF-8 encodings older POMs declare,
// ISO-8859-1 being the common one.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
