// Package spooled implements a temp file that buffers data in memory and
// rolls over to a file on disk once it grows past a configured size.
//
// A TempFile behaves like a single seekable, readable, writable stream. Small
// payloads never touch the disk; large ones are moved to an OS temp file the
// first time a write or truncate takes them past the threshold. The move
// keeps the logical position and length exactly as they were, and is one way.
//
// A TempFile is not safe for concurrent use. If a rollover fails part way the
// TempFile is poisoned: every later operation returns ErrPoisoned and the
// instance should be discarded with Close.
package spooled

import (
	"errors"
	"io"

	"github.com/lanrat/spooled/memfile"
	"github.com/lanrat/spooled/tempfile"
)

// TempFile is a byte stream backed by memory until it exceeds its max size,
// then by a temp file on disk.
type TempFile struct {
	config Config

	// exactly one of mem and disk is set until the TempFile is poisoned,
	// finalized or closed
	mem  *memfile.Buffer
	disk tempfile.File

	rolled   bool
	poisoned bool
	done     error // ErrFinalized or ErrClosed once the backing store is gone
}

// New returns a TempFile that rolls over to disk once its length would exceed maxSize.
func New(maxSize int64) *TempFile {
	return NewWithConfig(&Config{MaxSize: maxSize, PreferDiskBacked: true})
}

// NewWithCapacity is like New but sets the starting capacity of the in-memory buffer.
// The capacity only affects allocation, never when the rollover happens.
func NewWithCapacity(maxSize int64, capacity int) *TempFile {
	return NewWithConfig(&Config{MaxSize: maxSize, InitialCapacity: capacity, PreferDiskBacked: true})
}

// NewWithConfig returns a TempFile using config.
// config can be nil to use the defaults, or only set the non-default values desired.
func NewWithConfig(config *Config) *TempFile {
	f := new(TempFile)
	f.config = mergeConfig(config)
	f.mem = memfile.NewBuffer(f.config.InitialCapacity)
	return f
}

// MaxSize returns the rollover threshold.
func (f *TempFile) MaxSize() int64 {
	return f.config.MaxSize
}

// IsRolled reports whether the data has been moved to disk.
func (f *TempFile) IsRolled() bool {
	return f.rolled
}

// IsPoisoned reports whether a rollover failed. A poisoned TempFile rejects all I/O.
func (f *TempFile) IsPoisoned() bool {
	return f.poisoned
}

// check must be called first by every operation touching the backing store
func (f *TempFile) check() error {
	if f.poisoned {
		return ErrPoisoned
	}
	return f.done
}

// Read reads up to len(p) bytes from the current position.
// At or past the end it returns 0, io.EOF.
func (f *TempFile) Read(p []byte) (int, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if f.disk != nil {
		n, err := f.disk.Read(p)
		if err != nil && err != io.EOF {
			err = NewDiskError(err, "read", f.disk.Name())
		}
		return n, err
	}
	return f.mem.Read(p)
}

// Write writes p at the current position, overwriting and extending the data
// as needed. Writing past the end fills the gap with zero bytes. If the data
// is in memory and the write would grow it beyond MaxSize, the TempFile rolls
// over to disk before anything is written.
func (f *TempFile) Write(p []byte) (int, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	pos, err := f.Position()
	if err != nil {
		return 0, err
	}
	if pos+int64(len(p)) < pos {
		return 0, ErrTooLarge
	}
	if f.disk == nil && f.exceeds(pos+int64(len(p))) {
		if err := f.roll(); err != nil {
			return 0, err
		}
	}
	if f.disk != nil {
		n, err := f.disk.Write(p)
		return n, NewDiskError(err, "write", f.disk.Name())
	}
	return f.mem.Write(p)
}

// WriteString is like Write but takes a string.
func (f *TempFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// exceeds reports whether growing the in-memory data to end bytes
// would take it past MaxSize.
func (f *TempFile) exceeds(end int64) bool {
	length := int64(f.mem.Len())
	if end > length {
		length = end
	}
	return length > f.config.MaxSize
}

// Seek sets the position for the next Read or Write, interpreted according
// to whence: io.SeekStart, io.SeekCurrent or io.SeekEnd. The position may be
// past the end of the data. A negative resulting position is ErrInvalidSeek.
func (f *TempFile) Seek(offset int64, whence int) (int64, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if f.disk == nil {
		pos, err := f.mem.Seek(offset, whence)
		switch {
		case errors.Is(err, memfile.ErrNegativePosition):
			return pos, ErrInvalidSeek
		case errors.Is(err, memfile.ErrInvalidWhence):
			return pos, ErrInvalidWhence
		}
		return pos, err
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent, io.SeekEnd:
		if offset >= 0 {
			pos, err := f.disk.Seek(offset, whence)
			return pos, NewDiskError(err, "seek", f.disk.Name())
		}
		var base int64
		var err error
		if whence == io.SeekCurrent {
			base, err = f.disk.Seek(0, io.SeekCurrent)
		} else {
			base, err = f.diskSize()
		}
		if err != nil {
			return 0, err
		}
		abs = base + offset
	default:
		return 0, ErrInvalidWhence
	}
	if abs < 0 {
		return 0, ErrInvalidSeek
	}
	pos, err := f.disk.Seek(abs, io.SeekStart)
	return pos, NewDiskError(err, "seek", f.disk.Name())
}

// Position returns the current position without moving it.
func (f *TempFile) Position() (int64, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if f.disk != nil {
		pos, err := f.disk.Seek(0, io.SeekCurrent)
		return pos, NewDiskError(err, "seek", f.disk.Name())
	}
	return f.mem.Position(), nil
}

// Size returns the length of the data.
func (f *TempFile) Size() (int64, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if f.disk != nil {
		return f.diskSize()
	}
	return int64(f.mem.Len()), nil
}

// diskSize returns the length of the disk file, leaving the cursor in place.
func (f *TempFile) diskSize() (int64, error) {
	cur, err := f.disk.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, NewDiskError(err, "seek", f.disk.Name())
	}
	end, err := f.disk.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, NewDiskError(err, "seek", f.disk.Name())
	}
	if _, err := f.disk.Seek(cur, io.SeekStart); err != nil {
		return 0, NewDiskError(err, "seek", f.disk.Name())
	}
	return end, nil
}

// Truncate changes the length of the data to size, zero filling when it
// grows. The position is not moved. Growing in-memory data beyond MaxSize
// rolls the TempFile over to disk first, so in-memory data never exceeds
// the threshold.
func (f *TempFile) Truncate(size int64) error {
	if err := f.check(); err != nil {
		return err
	}
	if size < 0 {
		return ErrNegativeSize
	}
	if f.disk == nil && size > f.config.MaxSize {
		if err := f.roll(); err != nil {
			return err
		}
	}
	if f.disk != nil {
		return NewDiskError(f.disk.Truncate(size), "truncate", f.disk.Name())
	}
	return f.mem.Truncate(size)
}

// Roll moves the data to disk now, regardless of its size.
// It does nothing if the TempFile is already on disk.
func (f *TempFile) Roll() error {
	if err := f.check(); err != nil {
		return err
	}
	if f.disk != nil {
		return nil
	}
	return f.roll()
}

// roll creates the temp file, copies the in-memory data into it and places
// its cursor at the in-memory position. The backing store is only swapped
// once all of that succeeded; any failure poisons the TempFile.
func (f *TempFile) roll() error {
	file, err := f.config.TempFileFactory(f.config.TempFilesDir, f.config.FilenamePrefix, f.config.PreferDiskBacked)
	if err != nil {
		return f.poison(nil, "create", err)
	}
	if _, err := f.mem.WriteTo(file); err != nil {
		return f.poison(file, "copy", err)
	}
	if _, err := file.Seek(f.mem.Position(), io.SeekStart); err != nil {
		return f.poison(file, "seek", err)
	}
	f.disk = file
	f.mem = nil
	f.rolled = true
	return nil
}

func (f *TempFile) poison(file tempfile.File, op string, err error) error {
	f.poisoned = true
	f.mem = nil
	if file == nil {
		return NewRolloverError(err, op, "")
	}
	name := file.Name()
	_ = file.Close()
	return NewRolloverError(err, op, name)
}

// Finalize hands the backing store over to the caller and ends the life of
// the TempFile; every later operation returns ErrFinalized. The store keeps
// its current position. The caller becomes responsible for closing a disk
// backed Data.
func (f *TempFile) Finalize() (*Data, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	d := &Data{Buffer: f.mem, File: f.disk}
	f.mem = nil
	f.disk = nil
	f.done = ErrFinalized
	return d, nil
}

// Close discards the TempFile and removes its temp file, if any.
// It may be called on a poisoned TempFile. Closing a finalized or
// already closed TempFile does nothing.
func (f *TempFile) Close() error {
	if f.done != nil {
		return nil
	}
	f.done = ErrClosed
	f.mem = nil
	if f.disk == nil {
		return nil
	}
	err := f.disk.Close()
	f.disk = nil
	return err
}
