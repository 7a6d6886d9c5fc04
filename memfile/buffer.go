// Package memfile provides a growable in-memory byte buffer with an
// independent cursor. It supports random access reads and writes, seeking
// past the end, and truncation, behaving like a file that never touches disk.
package memfile

import (
	"errors"
	"io"
	"math"
)

var (
	// ErrNegativePosition is returned by Seek when the resulting position would be negative.
	ErrNegativePosition = errors.New("memfile: negative position")
	// ErrInvalidWhence is returned by Seek for an unknown whence value.
	ErrInvalidWhence = errors.New("memfile: invalid whence")
	// ErrNegativeSize is returned by Truncate for a negative size.
	ErrNegativeSize = errors.New("memfile: negative size")
	// ErrTooLarge is returned when the content would grow past the largest representable length.
	ErrTooLarge = errors.New("memfile: write too large")
)

// Buffer is an in-memory random access byte buffer.
// The cursor may be placed past the end of the data; a later Write there
// fills the gap with zero bytes.
type Buffer struct {
	buf []byte
	pos int64
}

// NewBuffer returns an empty Buffer with the given starting capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// NewBufferBytes returns a Buffer holding b with the cursor at 0.
// The Buffer takes ownership of b.
func NewBufferBytes(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Len returns the length of the content.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying slice.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Position returns the current cursor.
func (b *Buffer) Position() int64 {
	return b.pos
}

// Bytes returns the content. The slice aliases the buffer until the next write.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.buf)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer. Bytes are written at the cursor, overwriting
// existing content and extending the buffer as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	end := b.pos + int64(len(p))
	if end < b.pos || end > math.MaxInt {
		return 0, ErrTooLarge
	}
	if end > int64(len(b.buf)) {
		b.grow(end)
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

// WriteString is like Write but takes a string.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Seek implements io.Seeker. The resulting position may exceed Len.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return b.pos, ErrInvalidWhence
	}
	if abs < 0 {
		return b.pos, ErrNegativePosition
	}
	b.pos = abs
	return abs, nil
}

// Truncate changes the length of the content to size, zero filling when
// growing. The cursor is not moved.
func (b *Buffer) Truncate(size int64) error {
	if size < 0 {
		return ErrNegativeSize
	}
	if size > math.MaxInt {
		return ErrTooLarge
	}
	if size <= int64(len(b.buf)) {
		b.buf = b.buf[:size]
		return nil
	}
	b.grow(size)
	return nil
}

// WriteTo writes the whole content to w regardless of the cursor.
// The cursor is not moved.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	if err == nil && n != len(b.buf) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Reset empties the buffer and rewinds the cursor, keeping the allocation.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
}

// grow extends the content to size bytes. New bytes are always zero, even
// when the capacity held stale data from an earlier truncate.
func (b *Buffer) grow(size int64) {
	old := len(b.buf)
	if size > int64(cap(b.buf)) {
		newCap := 2 * cap(b.buf)
		if int64(newCap) < size {
			newCap = int(size)
		}
		buf := make([]byte, size, newCap)
		copy(buf, b.buf)
		b.buf = buf
		return
	}
	b.buf = b.buf[:size]
	clear(b.buf[old:])
}
