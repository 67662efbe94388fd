package pathgen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoExtension          = errors.New("filename has no extension")
	ErrUnsupportedExtension = errors.New("file extension is not supported")
	ErrUnsafeKey            = errors.New("storage key contains unsafe path elements")
)

// allowedExtensions are the extensions the service accepts for upload.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"svg":  true,
}

// GenerateStorageKey builds a collision-free object-store key for an upload:
// YYYY/MM/DD/<uuid>.<ext>. The extension comes from the original filename and
// must be in the allowed set.
func GenerateStorageKey(originalFilename string) (string, error) {
	ext, err := ValidateExtension(originalFilename)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	return fmt.Sprintf("%04d/%02d/%02d/%s.%s",
		now.Year(), now.Month(), now.Day(), uuid.New().String(), ext), nil
}

// ValidateExtension returns the lowercased extension without the dot,
// or an error when it is missing or not allowed.
func ValidateExtension(filename string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", ErrNoExtension
	}
	ext = strings.ToLower(ext)
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedExtension
	}
	return ext, nil
}

// SanitizeFilename strips characters that are unsafe to persist and caps the
// length. Used for the display filename only, never for the storage key.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		if b.Len() >= 255 {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// ValidateStorageKey rejects keys that could escape the storage root.
func ValidateStorageKey(key string) error {
	if !IsSafeKey(key) {
		return ErrUnsafeKey
	}
	return nil
}

// IsSafeKey reports whether a storage key is a plain relative path with no
// traversal sequences, absolute prefixes, or shell metacharacters.
func IsSafeKey(key string) bool {
	if key == "" {
		return false
	}
	for _, pattern := range []string{"..", "//", "\\\\", "\x00", "|", "&", ";"} {
		if strings.Contains(key, pattern) {
			return false
		}
	}
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, "\\") {
		return false
	}
	// Windows drive prefix (C:\...)
	if len(key) >= 2 && key[1] == ':' {
		return false
	}
	return true
}

// FormatSize renders a byte count for humans.
func FormatSize(bytes int64) string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
