package usage

import "errors"

var (
	ErrAlreadyMarked = errors.New("file already marked as used for this usage")
	ErrUsageNotFound = errors.New("file usage not found")
)
