package spooled

import (
	"io"

	"github.com/lanrat/spooled/memfile"
	"github.com/lanrat/spooled/tempfile"
)

// Data is the backing store handed over by TempFile.Finalize.
// Exactly one of Buffer and File is set.
type Data struct {
	// Buffer holds the data if the TempFile never rolled over
	Buffer *memfile.Buffer
	// File holds the data if the TempFile rolled over to disk
	File tempfile.File
}

// IsOnDisk reports whether the data lives in a temp file.
func (d *Data) IsOnDisk() bool {
	return d.File != nil
}

// Bytes returns the in-memory content, or nil when the data is on disk.
func (d *Data) Bytes() []byte {
	if d.Buffer == nil {
		return nil
	}
	return d.Buffer.Bytes()
}

// Rewind seeks the backing store to the start and returns it for reading.
// It fails with ErrClosed after Close.
func (d *Data) Rewind() (io.ReadSeeker, error) {
	var rs io.ReadSeeker
	switch {
	case d.File != nil:
		rs = d.File
	case d.Buffer != nil:
		rs = d.Buffer
	default:
		return nil, ErrClosed
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return rs, nil
}

// Close releases the backing store, removing the temp file if there is one.
func (d *Data) Close() error {
	if d.File != nil {
		err := d.File.Close()
		d.File = nil
		return err
	}
	d.Buffer = nil
	return nil
}
