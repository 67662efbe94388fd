package validator

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("file type is not supported")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
)

// allowedMimeTypes is the set of content types accepted for any category.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// DetectMimeType sniffs the real content type from the payload and verifies it
// is allowed. The client-declared Content-Type is never trusted.
func DetectMimeType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := http.DetectContentType(head)
	mimeType = strings.Split(mimeType, ";")[0]

	// DetectContentType reports SVG as text/xml or text/plain.
	if mimeType == "text/xml" || mimeType == "text/plain" {
		if isSVG(data) {
			mimeType = "image/svg+xml"
		}
	}

	if !allowedMimeTypes[mimeType] {
		return "", ErrUnsupportedType
	}
	return mimeType, nil
}

// CheckSize validates the payload size against a per-category limit.
func CheckSize(size, limit int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	if size > limit {
		return ErrFileTooLarge
	}
	return nil
}

func isSVG(data []byte) bool {
	probe := data
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	return strings.Contains(string(probe), "<svg")
}
