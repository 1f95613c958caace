package artifact

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeCompile, false},
		{"compile", ScopeCompile, false},
		{"Provided", ScopeProvided, false},
		{" runtime ", ScopeRuntime, false},
		{"test", ScopeTest, false},
		{"system", ScopeSystem, false},
		{"import", ScopeImport, false},
		{"bogus", ScopeCompile, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScopeJSON(t *testing.T) {
	d := Dependency{GroupID: "g", ArtifactID: "a", Version: "1", Scope: ScopeTest}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"groupId":"g","artifactId":"a","version":"1","scope":"test"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var back Dependency
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("decoded = %+v, want %+v", back, d)
	}
}

func TestCompareDependencies(t *testing.T) {
	want := []Dependency{
		{GroupID: "a", ArtifactID: "x", Version: "1.0"},
		{GroupID: "b", ArtifactID: "a", Version: "1.0"},
		{GroupID: "b", ArtifactID: "b", Version: "1.0-SNAPSHOT"},
		{GroupID: "b", ArtifactID: "b", Version: "1.0"},
		{GroupID: "b", ArtifactID: "b", Version: "1.0", Scope: ScopeRuntime},
		{GroupID: "b", ArtifactID: "b", Version: "1.0", Scope: ScopeTest},
		{GroupID: "b", ArtifactID: "b", Version: "1.0", Scope: ScopeTest, Optional: true},
		{GroupID: "b", ArtifactID: "b", Version: "2.0"},
	}

	got := slices.Clone(want)
	slices.Reverse(got)
	slices.SortFunc(got, CompareDependencies)

	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v\nwant %v", got, want)
	}
}

func TestDependencyString(t *testing.T) {
	tests := []struct {
		dep  Dependency
		want string
	}{
		{Dependency{GroupID: "g", ArtifactID: "a", Version: "1"}, "g:a:1"},
		{Dependency{GroupID: "g", ArtifactID: "a", Version: "1", Scope: ScopeTest}, "g:a:1 [test]"},
		{Dependency{GroupID: "g", ArtifactID: "a", Version: "1", Optional: true}, "g:a:1 (optional)"},
	}
	for _, tt := range tests {
		if got := tt.dep.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDependencyUnresolved(t *testing.T) {
	if (Dependency{GroupID: "g", ArtifactID: "a", Version: "1"}).Unresolved() {
		t.Error("plain dependency reported unresolved")
	}
	if !(Dependency{GroupID: "g", ArtifactID: "a", Version: "${foo.version}"}).Unresolved() {
		t.Error("placeholder version not reported unresolved")
	}
}

func TestDependencyArtifact(t *testing.T) {
	d := Dependency{GroupID: "g", ArtifactID: "a", Version: "1", Scope: ScopeTest}
	if got, want := d.Artifact(), MustParse("g:a:1"); got != want {
		t.Errorf("Artifact() = %v, want %v", got, want)
	}
}
