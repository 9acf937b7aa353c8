package services

import (
	"errors"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		maxBytes    int64
		wantExt     string
		wantErr     error
	}{
		{"jpeg ok", "image/jpeg", 1024, 5 << 20, ".jpg", nil},
		{"png ok", "image/png", 1024, 5 << 20, ".png", nil},
		{"webp ok", "image/webp", 1024, 5 << 20, ".webp", nil},
		{"svg rejected", "image/svg+xml", 1024, 5 << 20, "", ErrUploadTypeNotAllowed},
		{"pdf rejected", "application/pdf", 1024, 5 << 20, "", ErrUploadTypeNotAllowed},
		{"too large", "image/png", 6 << 20, 5 << 20, "", ErrUploadTooLarge},
		{"at limit ok", "image/png", 5 << 20, 5 << 20, ".png", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ValidateUpload(tt.contentType, tt.size, tt.maxBytes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateUpload() error = %v, want %v", err, tt.wantErr)
			}
			if ext != tt.wantExt {
				t.Errorf("ValidateUpload() ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}
