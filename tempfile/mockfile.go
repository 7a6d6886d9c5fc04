package tempfile

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lanrat/spooled/memfile"
)

// ErrInjected is returned by a MockFile operation configured to fail.
var ErrInjected = errors.New("tempfile: injected failure")

var mockCount atomic.Int64

// MockFile provides an in-memory implementation of the File interface.
// It keeps all data in a memfile.Buffer instead of writing to disk. This is
// useful for testing and benchmarking without filesystem I/O, and for
// simulating disk failures.
type MockFile struct {
	data   *memfile.Buffer
	name   string
	closed bool

	// WriteLimit, when positive, is the total number of bytes the file
	// accepts. The write that would go past it fails with ErrInjected
	// after writing up to the limit.
	WriteLimit int64
	// FailSeek makes every Seek fail.
	FailSeek bool
	// FailTruncate makes every Truncate fail.
	FailTruncate bool
	// FailSync makes every Sync fail.
	FailSync bool

	written int64
}

// Mock creates a new MockFile with the specified initial capacity.
func Mock(n int) *MockFile {
	return &MockFile{
		data: memfile.NewBuffer(n),
		name: fmt.Sprintf("mock-%d", mockCount.Add(1)),
	}
}

// MockFactory returns a Factory that hands out the given files in order.
// Once they are used up it returns ErrInjected, simulating a failed create.
func MockFactory(files ...*MockFile) Factory {
	return func(string, string, bool) (File, error) {
		if len(files) == 0 {
			return nil, fmt.Errorf("create temp file: %w", ErrInjected)
		}
		f := files[0]
		files = files[1:]
		return f, nil
	}
}

func (m *MockFile) Name() string {
	return m.name
}

// Bytes returns the current content of the file.
func (m *MockFile) Bytes() []byte {
	return m.data.Bytes()
}

// Closed reports whether Close was called.
func (m *MockFile) Closed() bool {
	return m.closed
}

func (m *MockFile) Read(p []byte) (int, error) {
	return m.data.Read(p)
}

func (m *MockFile) Write(p []byte) (int, error) {
	if m.WriteLimit > 0 && m.written+int64(len(p)) > m.WriteLimit {
		n, _ := m.data.Write(p[:m.WriteLimit-m.written])
		m.written += int64(n)
		return n, fmt.Errorf("write %s: %w", m.name, ErrInjected)
	}
	n, err := m.data.Write(p)
	m.written += int64(n)
	return n, err
}

func (m *MockFile) Seek(offset int64, whence int) (int64, error) {
	if m.FailSeek {
		return 0, fmt.Errorf("seek %s: %w", m.name, ErrInjected)
	}
	return m.data.Seek(offset, whence)
}

func (m *MockFile) Truncate(size int64) error {
	if m.FailTruncate {
		return fmt.Errorf("truncate %s: %w", m.name, ErrInjected)
	}
	return m.data.Truncate(size)
}

func (m *MockFile) Sync() error {
	if m.FailSync {
		return fmt.Errorf("sync %s: %w", m.name, ErrInjected)
	}
	return nil
}

// Close marks the mock closed and releases its memory.
func (m *MockFile) Close() error {
	m.closed = true
	m.data.Reset()
	return nil
}
