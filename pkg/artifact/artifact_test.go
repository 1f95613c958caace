package artifact

import (
	"testing"

	"github.com/matzehuels/jarscope/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		coords  string
		want    Artifact
		wantErr bool
	}{
		{
			coords: "org.apache.commons:commons-lang3:3.12.0",
			want:   Artifact{"org.apache.commons", "commons-lang3", "3.12.0", "jar"},
		},
		{
			coords: "org.apache:parent:1.0:pom",
			want:   Artifact{"org.apache", "parent", "1.0", "pom"},
		},
		{
			coords: "  junit:junit:4.13.2  ",
			want:   Artifact{"junit", "junit", "4.13.2", "jar"},
		},
		{coords: "", wantErr: true},
		{coords: "junit", wantErr: true},
		{coords: "junit:junit", wantErr: true},
		{coords: "junit:junit:", wantErr: true},
		{coords: ":junit:4.13", wantErr: true},
		{coords: "junit::4.13", wantErr: true},
		{coords: "junit:junit:4.13:", wantErr: true},
		{coords: "a:b:c:d:e", wantErr: true},
		{coords: "../x:junit:4.13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.coords, func(t *testing.T) {
			got, err := Parse(tt.coords)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.coords, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidCoordinates) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCoordinates)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.coords, got, tt.want)
			}
		})
	}
}

func TestCoordinatesRoundTrip(t *testing.T) {
	for _, coords := range []string{
		"org.apache.commons:commons-lang3:3.12.0",
		"com.google.guava:guava:31.1-jre",
		"org.example:app:1.0-SNAPSHOT",
		"org.example:bom:2.0:pom",
		"org.example:webapp:2.0:war",
	} {
		a, err := Parse(coords)
		if err != nil {
			t.Fatalf("Parse(%q): %v", coords, err)
		}
		if got := a.Coordinates(); got != coords {
			t.Errorf("Parse(%q).Coordinates() = %q", coords, got)
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New("", "a", "1.0", ""); err == nil {
		t.Error("New() with empty groupId should fail")
	}
	if _, err := New("g", "", "1.0", ""); err == nil {
		t.Error("New() with empty artifactId should fail")
	}

	a, err := New("g", "a", "", "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Packaging != DefaultPackaging {
		t.Errorf("Packaging = %q, want %q", a.Packaging, DefaultPackaging)
	}
}

func TestRepositoryPath(t *testing.T) {
	tests := []struct {
		coords string
		want   string
	}{
		{"org.apache.commons:commons-lang3:3.12.0", "org/apache/commons/commons-lang3/3.12.0/commons-lang3-3.12.0.jar"},
		{"org.apache.commons:commons-lang3:3.12.0:pom", "org/apache/commons/commons-lang3/3.12.0/commons-lang3-3.12.0.pom"},
		{"org.osgi:core:6.0:bundle", "org/osgi/core/6.0/core-6.0.jar"},
		{"com.acme:app:1.0:test-jar", "com/acme/app/1.0/app-1.0-tests.jar"},
		{"com.acme:app:1.0:sources", "com/acme/app/1.0/app-1.0-sources.jar"},
		{"com.acme:web:1.0:war", "com/acme/web/1.0/web-1.0.war"},
		{"com.acme:dist:1.0:zip", "com/acme/dist/1.0/dist-1.0.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.coords, func(t *testing.T) {
			if got := MustParse(tt.coords).RepositoryPath(); got != tt.want {
				t.Errorf("RepositoryPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArtifactIdentity(t *testing.T) {
	jar := MustParse("g:a:1.0")
	pom := jar.POM()

	if jar == pom {
		t.Error("artifacts differing only in packaging should not be equal")
	}
	if pom.Packaging != PackagingPOM {
		t.Errorf("POM().Packaging = %q, want %q", pom.Packaging, PackagingPOM)
	}
	if jar.Packaging != DefaultPackaging {
		t.Error("POM() must not modify the receiver")
	}
	if pom.WithPackaging("jar") != jar {
		t.Error("WithPackaging round trip should restore identity")
	}

	seen := map[Artifact]bool{jar: true}
	if !seen[MustParse("g:a:1.0:jar")] {
		t.Error("equal artifacts should hash identically")
	}
}

func TestCompare(t *testing.T) {
	ordered := []Artifact{
		MustParse("com.example:zzz:1.0"),
		MustParse("org.apache:commons-lang:1.0"),
		MustParse("org.apache:commons-lang:1.10"),
		MustParse("org.apache:commons-lang:1.10:pom"),
		MustParse("org.apache:commons-lang3:1.0"),
	}
	for i := range ordered {
		for j := range ordered {
			want := sign(i - j)
			if got := sign(Compare(ordered[i], ordered[j])); got != want {
				t.Errorf("Compare(%v, %v) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
}
