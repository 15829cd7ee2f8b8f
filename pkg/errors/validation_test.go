package errors

import (
	"testing"
)

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "m", false},
		{"valid multi-letter", "kg", false},
		{"valid unicode", "°C", false},
		{"valid with digits", "m2x", false},
		{"valid with dash", "lb-f", false},
		{"valid replacement character", "x\uFFFD", false},

		{"empty", "", true},
		{"star", "m*s", true},
		{"slash", "m/s", true},
		{"caret", "m^2", true},
		{"space", "sq m", true},
		{"tab", "m\t", true},
		{"newline", "m\n", true},
		{"control char", "m\x01", true},
		{"reserved unitless", "1", true},
		{"invalid utf8", "m\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSymbol) {
				t.Errorf("ValidateSymbol(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSymbol)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "meter", false},
		{"valid with space", "pound force", false},
		{"valid unicode", "ångström", false},

		{"empty", "", true},
		{"leading space", " meter", true},
		{"trailing space", "meter ", true},
		{"control char", "met\x00er", true},
		{"invalid utf8", "met\xc3er", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
