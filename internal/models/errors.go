package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrCacheUnreadable ErrorType = iota
	ErrInstalledDbUnreadable
	ErrMalformedCacheFilename
	ErrMalformedInstalledRecord
	ErrDeletePermission
	ErrInvalidConfig
	ErrVerifyFailed
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrCacheUnreadable:
		return "CacheUnreadable"
	case ErrInstalledDbUnreadable:
		return "InstalledDbUnreadable"
	case ErrMalformedCacheFilename:
		return "MalformedCacheFilename"
	case ErrMalformedInstalledRecord:
		return "MalformedInstalledRecord"
	case ErrDeletePermission:
		return "DeletePermission"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrVerifyFailed:
		return "VerifyFailed"
	default:
		return "Unknown"
	}
}

// SweepError represents an error during a cache sweep run. Path names the
// file or directory the error concerns, when there is one.
type SweepError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *SweepError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *SweepError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is (or wraps) a SweepError of the given type.
func IsType(err error, t ErrorType) bool {
	var se *SweepError
	return errors.As(err, &se) && se.Type == t
}
