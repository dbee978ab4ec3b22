package errors

import (
	"strings"
	"testing"
)

func TestValidateUploadFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid csv", "pathways.csv", false},
		{"valid upper ext", "PATHWAYS.CSV", false},
		{"valid with spaces", "aggressive R1.csv", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300) + ".csv", true},
		{"wrong extension", "pathways.xlsx", true},
		{"no extension", "pathways", true},
		{"with path /", "data/pathways.csv", true},
		{"with path \\", "data\\pathways.csv", true},
		{"traversal", "..csv", true},
		{"hidden file", ".pathways.csv", true},
		{"null byte", "a\x00.csv", true},
		{"newline", "a\n.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUploadFilename(tt.input, ".csv")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUploadFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFilename) {
				t.Errorf("ValidateUploadFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFilename)
			}
		})
	}
}

func TestValidateUploadFilenameAnyExtension(t *testing.T) {
	if err := ValidateUploadFilename("info.json"); err != nil {
		t.Errorf("ValidateUploadFilename without extensions = %v, want nil", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/pathways.csv", false},
		{"absolute", "/tmp/pathways.csv", false},
		{"empty", "", true},
		{"control char", "data/\x01.csv", true},
		{"too long", strings.Repeat("a", 5000), true},
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

func TestRequireColumns(t *testing.T) {
	required := []string{"GS_ID", "wFC", "pFDR", "x", "y", "NAME"}

	if errs := RequireColumns([]string{"NAME", "GS_ID", "wFC", "pFDR", "x", "y", "Extra"}, required); errs != nil {
		t.Errorf("RequireColumns(all present) = %v, want nil", errs)
	}

	errs := RequireColumns([]string{"GS_ID", "wFC", "x"}, required)
	if len(errs) != 3 {
		t.Fatalf("RequireColumns() returned %d errors, want 3", len(errs))
	}
	want := []string{"pFDR", "y", "NAME"}
	for i, e := range errs {
		if e.Column != want[i] {
			t.Errorf("errs[%d].Column = %q, want %q", i, e.Column, want[i])
		}
		if e.ErrorCode() != ErrCodeInvalidColumn {
			t.Errorf("errs[%d].ErrorCode() = %v, want %v", i, e.ErrorCode(), ErrCodeInvalidColumn)
		}
	}
}
