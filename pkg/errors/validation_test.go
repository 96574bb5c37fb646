package errors

import (
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"csv", "call_handler_menu_entries_0f3a.csv", false},
		{"xlsx", "export.xlsx", false},
		{"spaces", "my export.csv", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"parent", "..", true},
		{"dot", ".", true},
		{"hidden", ".env", true},
		{"traversal", "../secret.csv", true},
		{"nested", "sub/file.csv", true},
		{"backslash", `..\\file.csv`, true},
		{"null byte", "file\x00.csv", true},
		{"newline", "file\n.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"valid simple", "handler_graph_images/Sales.png", false},
		{"valid filename only", "handler_graph_combined.pdf", false},
		{"valid with dots", "v1.2.3/report.pdf", false},
		{"valid double dot in name", "a..b.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare host", "cuc.example.com", "https://cuc.example.com", false},
		{"host and port", "10.0.0.5:8443", "https://10.0.0.5:8443", false},
		{"https", "https://cuc.example.com/", "https://cuc.example.com", false},
		{"http", "http://127.0.0.1:9000", "http://127.0.0.1:9000", false},
		{"whitespace", "  cuc.example.com  ", "https://cuc.example.com", false},

		{"empty", "", "", true},
		{"ftp", "ftp://cuc.example.com", "", true},
		{"no host", "https://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeRender,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
