package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound        = errors.New("requested resource not found")
	ErrUnknownKind     = errors.New("unknown content kind")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedType = errors.New("file type is not allowed")
)
