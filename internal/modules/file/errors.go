package file

import "errors"

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrEmptyIDList     = errors.New("file id list is empty")
	ErrTooManyIDs      = errors.New("too many file ids requested")
)
