package spooled

import (
	"errors"
	"fmt"
)

var (
	// ErrPoisoned is returned by every operation on a TempFile after a rollover failed.
	// The TempFile is unusable and should be discarded with Close.
	ErrPoisoned = errors.New("spooled: temp file poisoned by failed rollover")
	// ErrInvalidSeek is returned when a seek would move the cursor before the start.
	ErrInvalidSeek = errors.New("spooled: seek to negative position")
	// ErrInvalidWhence is returned for a whence other than io.SeekStart, io.SeekCurrent or io.SeekEnd.
	ErrInvalidWhence = errors.New("spooled: invalid whence")
	// ErrNegativeSize is returned by Truncate for a negative size.
	ErrNegativeSize = errors.New("spooled: negative size")
	// ErrFinalized is returned by operations on a TempFile after Finalize.
	ErrFinalized = errors.New("spooled: temp file already finalized")
	// ErrClosed is returned by operations on a TempFile, or a Data, after Close.
	ErrClosed = errors.New("spooled: temp file closed")
	// ErrTooLarge is returned by Write when the write would end past the largest int64 offset.
	ErrTooLarge = errors.New("spooled: write too large")
)

// RolloverError represents a failure moving in-memory data to disk.
// It poisons the TempFile it came from and matches ErrPoisoned with errors.Is.
type RolloverError struct {
	// Op is the rollover step that failed: "create", "copy" or "seek"
	Op string
	// Path is the temp file involved, if one was created
	Path string
	// Err is the underlying error
	Err error
}

func (e *RolloverError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("spooled: rollover failed during %s on %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("spooled: rollover failed during %s: %v", e.Op, e.Err)
}

func (e *RolloverError) Unwrap() error {
	return e.Err
}

// Is reports ErrPoisoned as a match.
func (e *RolloverError) Is(target error) bool {
	return target == ErrPoisoned
}

// NewRolloverError creates a RolloverError
func NewRolloverError(err error, op, path string) error {
	return &RolloverError{Op: op, Path: path, Err: err}
}

// DiskError represents an I/O failure on an already rolled over TempFile.
// It does not poison the TempFile.
type DiskError struct {
	// Op is the operation that failed
	Op string
	// Path is the temp file
	Path string
	// Err is the underlying error
	Err error
}

func (e *DiskError) Error() string {
	return fmt.Sprintf("spooled: disk error during %s on %s: %v", e.Op, e.Path, e.Err)
}

func (e *DiskError) Unwrap() error {
	return e.Err
}

// NewDiskError creates a DiskError wrapping the underlying I/O error.
// A nil err returns nil.
func NewDiskError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return &DiskError{Op: op, Path: path, Err: err}
}
