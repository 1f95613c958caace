package errors

import "testing"

func TestValidateCoordinatePart(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"org.apache.commons", false},
		{"commons-lang3", false},
		{"1.0-SNAPSHOT", false},
		{"${project.version}", false},
		{"", true},
		{"../etc", true},
		{"a/b", true},
		{"a\\b", true},
		{"a:b", true},
		{"a b", true},
		{"a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateCoordinatePart("groupId", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCoordinatePart(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCoordinates) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidCoordinates)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"org/apache/commons/commons-lang3/3.0/commons-lang3-3.0.pom", false},
		{"da39a3ee5e6b4b0d3255bfef95601890afd80709.json", false},
		{"", true},
		{"/etc/passwd", true},
		{"org/../../etc", true},
		{"org\\apache", true},
		{"bad\x01path", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if err := ValidatePath(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://repo1.maven.org/maven2", false},
		{"http://localhost:8081/repository", false},
		{"", true},
		{"ftp://example.com", true},
		{"repo1.maven.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
