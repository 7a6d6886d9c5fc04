// Package tempfile creates anonymous temporary files used as the on-disk
// backing store of a spooled stream. Files are removed from the filesystem
// when closed, unless ownership was taken with Persist.
package tempfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// filename prefix for files put in temp directory
	filenamePrefix = fmt.Sprintf("spooled_%d_", os.Getpid())

	// ErrPersisted is returned by operations on a DiskFile after Persist succeeded.
	ErrPersisted = errors.New("tempfile: file has been persisted")
)

// DiskFile is a read/write temp file on the host filesystem.
type DiskFile struct {
	file      *os.File
	persisted bool
}

// New creates a new temp file in dir. An empty dir, or one that cannot be
// used, selects a directory with GetTempDir.
func New(dir string, preferDiskBacked bool) (*DiskFile, error) {
	return NewWithPrefix(dir, filenamePrefix, preferDiskBacked)
}

// NewWithPrefix is like New but sets the file name prefix.
func NewWithPrefix(dir, prefix string, preferDiskBacked bool) (*DiskFile, error) {
	dir = GetTempDir(dir, preferDiskBacked)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("tempfile: creating %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, prefix)
	if err != nil {
		return nil, err
	}
	return &DiskFile{file: f}, nil
}

// Create is a Factory backed by NewWithPrefix.
func Create(dir, prefix string, preferDiskBacked bool) (File, error) {
	f, err := NewWithPrefix(dir, prefix, preferDiskBacked)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *DiskFile) Name() string {
	return f.file.Name()
}

func (f *DiskFile) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

func (f *DiskFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

func (f *DiskFile) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Truncate resizes the file. The OS zero fills any extension.
func (f *DiskFile) Truncate(size int64) error {
	return f.file.Truncate(size)
}

func (f *DiskFile) Sync() error {
	return f.file.Sync()
}

// OSFile returns the underlying handle. The DiskFile still owns it.
func (f *DiskFile) OSFile() *os.File {
	return f.file
}

// Close closes the file and removes it from disk.
// After Persist, Close only closes the handle.
func (f *DiskFile) Close() error {
	err := f.file.Close()
	if f.persisted {
		return err
	}
	rmErr := os.Remove(f.file.Name())
	if err != nil {
		return err
	}
	if rmErr != nil && !os.IsNotExist(rmErr) {
		return rmErr
	}
	return nil
}

// Persist moves the file to path and hands the open handle over to the
// caller, who becomes responsible for closing it. The file is synced first
// and its cursor is left unchanged.
func (f *DiskFile) Persist(path string) (*os.File, error) {
	if f.persisted {
		return nil, ErrPersisted
	}
	if err := f.file.Sync(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.Rename(f.file.Name(), path); err != nil {
		return nil, fmt.Errorf("tempfile: persist %s: %w", path, err)
	}
	f.persisted = true
	return f.file, nil
}
