package pom

import (
	"regexp"
	"strings"

	"github.com/matzehuels/jarscope/pkg/artifact"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// EvaluationProperties returns the lookup table used by [Evaluate]: implicit project
// properties overlaid by the POM's declared <properties>.
func (p *Project) EvaluationProperties() map[string]string {
	props := make(map[string]string, len(p.Properties)+16)

	implicit := func(name, value string) {
		if value == "" {
			return
		}
		props["project."+name] = value
		props["pom."+name] = value
	}
	implicit("groupId", p.EffectiveGroupID())
	implicit("artifactId", p.ArtifactID)
	implicit("version", p.EffectiveVersion())
	implicit("packaging", p.EffectivePackaging())
	if p.Parent != nil {
		implicit("parent.groupId", p.Parent.GroupID)
		implicit("parent.artifactId", p.Parent.ArtifactID)
		implicit("parent.version", p.Parent.Version)
	}
	if v := p.EffectiveGroupID(); v != "" {
		props["groupId"] = v
	}
	if v := p.EffectiveVersion(); v != "" {
		props["version"] = v
	}

	for k, v := range p.Properties {
		props[k] = v
	}
	return props
}

// Substitute replaces every ${name} in s found in props. The replacement
// text is not rescanned.
func Substitute(s string, props map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := props[name]; ok {
			return v
		}
		return m
	})
}

// Evaluate returns p's dependencies with properties substituted and missing
// versions filled from <dependencyManagement>, in document order. p is not
// modified. A POM without dependencies yields an empty, non-nil slice.
func Evaluate(p *Project) []artifact.Dependency {
	props := p.EvaluationProperties()

	managed := make(map[string]RawDependency, len(p.Managed))
	for _, m := range p.Managed {
		m = substituteRaw(m, props)
		key := m.GroupID + ":" + m.ArtifactID
		if _, dup := managed[key]; !dup {
			managed[key] = m
		}
	}

	deps := make([]artifact.Dependency, 0, len(p.Dependencies))
	for _, raw := range p.Dependencies {
		d := substituteRaw(raw, props)
		if m, ok := managed[d.GroupID+":"+d.ArtifactID]; ok {
			if d.Version == "" {
				d.Version = m.Version
			}
			if d.Scope == "" {
				d.Scope = m.Scope
			}
		}

		// Unknown scopes are read as compile, the Maven default.
		scope, _ := artifact.ParseScope(d.Scope)
		deps = append(deps, artifact.Dependency{
			GroupID:    d.GroupID,
			ArtifactID: d.ArtifactID,
			Version:    d.Version,
			Scope:      scope,
			Optional:   strings.EqualFold(d.Optional, "true"),
		})
	}
	return deps
}

func substituteRaw(d RawDependency, props map[string]string) RawDependency {
	d.GroupID = Substitute(d.GroupID, props)
	d.ArtifactID = Substitute(d.ArtifactID, props)
	d.Version = Substitute(d.Version, props)
	d.Scope = Substitute(d.Scope, props)
	d.Optional = Substitute(d.Optional, props)
	return d
}
