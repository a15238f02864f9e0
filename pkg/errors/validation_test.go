package errors

import (
	"strings"
	"testing"
)

func TestValidateComponentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Rpb1", false},
		{"valid with dot", "Rpb1.1", false},
		{"valid with space", "Nup84 complex", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 81), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "MELVKLS", ""},
		{"single", "G", ""},

		{"empty", "", "sequence cannot be empty"},
		{"lowercase", "MELvK", `invalid residue code "v" at position 4`},
		{"digit", "M1", `invalid residue code "1" at position 2`},
		{"space", "ME LK", `invalid residue code " " at position 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateSequence(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateSequence(%q) = nil, want error", tt.input)
			}
			if got := UserMessage(err); got != tt.wantErr {
				t.Errorf("message = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestValidateChainID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"A", false},
		{"z", false},
		{"AA", false},
		{"0", false},
		{"", true},
		{"A B", true},
		{"ABCDE", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateChainID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChainID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"relative", "data/rpb1.pdb", false},
		{"absolute", "/data/rpb1.pdb", false},
		{"parent", "../rpb1.pdb", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"control", "a\x01b", true},
		{"backslash", "data\\rpb1.pdb", true},
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
