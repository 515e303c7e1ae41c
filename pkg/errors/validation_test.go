package errors

import (
	"strings"
	"testing"
)

func TestValidateVariableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Parser", false},
		{"valid path", "src/main/java/App.java", false},
		{"valid qualified", "org.example.App$Inner", false},
		{"valid with spaces", "My Module", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 2000), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVariableName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVariableName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateWeightName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"cochange", "Cochange", false},
		{"call", "Call", false},
		{"empty", "", true},
		{"comma", "Call,Use", true},
		{"tab", "Call\tUse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeightName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeightName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
