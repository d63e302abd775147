package errors

import (
	"strings"
	"testing"
)

func TestValidateRouteID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "route-001", false},
		{"dotted", "tree.12.routes.3", false},
		{"alphanumeric", "R42", false},
		{"empty", "", true},
		{"leading dash", "-route", true},
		{"path separator", "a/b", true},
		{"traversal", "../etc", true},
		{"control character", "route\x00id", true},
		{"too long", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRouteID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRouteID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRoute) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRoute)
			}
		})
	}
}

func TestValidateClusterID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"single bond", "1.1", false},
		{"zero bonds", "0.1", false},
		{"multi digit", "12.34", false},
		{"empty", "", true},
		{"missing index", "2", true},
		{"trailing dot", "2.", true},
		{"letters", "a.b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClusterID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClusterID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "reports/run.json", false},
		{"nested", "a/b/c.svg", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "a/../../b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateElement(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr bool
	}{
		{"carbon", "C", false},
		{"chlorine", "Cl", false},
		{"empty", "", true},
		{"lowercase", "c", true},
		{"too long", "Xyz", true},
		{"digit", "C1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElement(tt.symbol)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElement(%q) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
			}
		})
	}
}
