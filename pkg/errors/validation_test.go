package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Country", false},
		{"valid with spaces", "Product Name", false},
		{"valid with percent", "Quantity % of Column", false},
		{"valid unicode", "Année", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"open bracket", "foo[bar", true},
		{"close bracket", "foo]bar", true},
		{"colon", "foo:bar", true},
		{"slash", "foo/bar", true},
		{"pipe", "foo|bar", true},
		{"hash", "#total", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(ErrCodeInvalidDimension, "dimension", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimension) {
				t.Errorf("ValidateName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateNameUsesCallerCode(t *testing.T) {
	err := ValidateName(ErrCodeInvalidMeasure, "measure", "")
	if GetCode(err) != ErrCodeInvalidMeasure {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidMeasure)
	}
	if !strings.Contains(err.Error(), "measure name") {
		t.Errorf("Error() = %q, want mention of measure name", err.Error())
	}
}

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "unit_price", false},
		{"valid with colon", "sales:qty", false},
		{"empty", "", true},
		{"whitespace", "  ", true},
		{"control char", "qty\x00", true},
		{"too long", strings.Repeat("f", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"text", "html", "json"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"text", false},
		{"html", false},
		{"json", false},
		{"", true},
		{"pdf", true},
		{"TEXT", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDimension,
		ErrCodeInvalidMeasure,
		ErrCodeInvalidDefinition,
		ErrCodeInvalidFormat,
		ErrCodeNotFound,
		ErrCodeNodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNotToggleable,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
