package errors

import (
	"strings"
	"testing"
)

func TestValidateRoot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid http", "http://repo1.maven.org/maven2/", false},
		{"valid https", "https://repo1.maven.org/maven2", false},

		{"empty", "", true},
		{"no scheme", "repo1.maven.org/maven2/", true},
		{"file scheme", "file:///var/repo/", true},
		{"embedded space", "http://repo one/", true},
		{"control char", "http://repo\x01/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoot(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"maven2 pattern", "[organisation]/[module]/[revision]/[artifact]-[revision].[ext]", false},
		{"legacy pattern", "[module]/[type]s/[artifact]-[revision].[ext]", false},
		{"no tokens", "plain/path", false},

		{"empty", "", true},
		{"traversal", "[module]/../secrets", true},
		{"unbalanced open", "[module", true},
		{"unbalanced close", "module]", true},
		{"nested brackets", "[[module]]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePattern(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCoordinatePart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "guava", false},
		{"valid dotted", "com.google.guava", false},
		{"valid with dash", "commons-lang3", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinatePart(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinatePart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
