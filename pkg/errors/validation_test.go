package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"plain", "v", false},
		{"scripts", "v_{i+1}^2", false},
		{"comma", "a,b", false},
		{"escaped brace", `\{x\}`, false},

		{"newline", "a\nb", true},
		{"carriage return", "a\rb", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("x", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "graph.grphc", false},
		{"nested", "out/graph.tex", false},
		{"absolute", "/tmp/graph.grphc", false},

		{"empty", "", true},
		{"traversal", "../secret", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("n", 5, 1, 10); err != nil {
		t.Errorf("ValidateCount in range: %v", err)
	}
	if err := ValidateCount("n", 0, 1, 10); err == nil {
		t.Error("ValidateCount below range: want error")
	}
	if err := ValidateCount("n", 11, 1, 10); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateCount above range code = %v", GetCode(err))
	}
}
