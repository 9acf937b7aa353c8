package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrUploadTooLarge       = errors.New("upload exceeds size limit")
	ErrUploadTypeNotAllowed = errors.New("upload content type not allowed")
)

// allowedImageTypes is the MIME allow-list for uploads.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores uploaded images on local disk and hands back stable
// relative paths. Callers concatenate the configured public origin when they
// need absolute URLs; file contents are never inspected beyond the MIME and
// size checks here.
type UploadService struct {
	dir      string
	maxBytes int64
}

func NewUploadService(dir string, maxBytes int64) *UploadService {
	return &UploadService{dir: dir, maxBytes: maxBytes}
}

// ValidateUpload checks the declared content type and size against the
// allow-list and cap, returning the extension to store the file under.
func ValidateUpload(contentType string, size, maxBytes int64) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrUploadTypeNotAllowed
	}
	if size > maxBytes {
		return "", ErrUploadTooLarge
	}
	return ext, nil
}

// SaveImage validates and stores a multipart image, returning the relative
// path (e.g. "/uploads/<uuid>.png").
func (s *UploadService) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	ext, err := ValidateUpload(fileHeader.Header.Get("Content-Type"), fileHeader.Size, s.maxBytes)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s", name), nil
}
