package service

import (
	"strings"

	"github.com/msomdec/imageshare/internal/domain"
)

// MaxImageSize is the largest accepted upload, inclusive.
const MaxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidateImage checks an upload's declared content type and size.
// The bytes themselves are not inspected.
func ValidateImage(contentType string, size int64) error {
	if !allowedImageTypes[contentType] {
		return domain.ErrUnsupportedImageType
	}
	if size > MaxImageSize {
		return domain.ErrImageTooLarge
	}
	return nil
}

// ImageExtension returns the file extension used for a content type,
// e.g. "image/png" -> "png".
func ImageExtension(contentType string) string {
	_, ext, _ := strings.Cut(contentType, "/")
	return ext
}

// ContentTypeForExtension is the inverse of ImageExtension for accepted types.
// It returns "" for anything else.
func ContentTypeForExtension(ext string) string {
	contentType := "image/" + ext
	if !allowedImageTypes[contentType] {
		return ""
	}
	return contentType
}
